// Package scheduler drives the engine's periodic ticks.
//
// Jobs are fire-and-forget callbacks on fixed intervals. A failing or
// panicking tick is logged and counted; it never stops the loop and never
// propagates to callers of unrelated synchronous operations.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"

	"github.com/lumen-chain/lumen/pkg/clock"
)

// Job is a periodic callback. It receives the tick time from the injected
// clock.
type Job func(now time.Time) error

type entry struct {
	name     string
	interval time.Duration
	run      Job
}

// Scheduler runs registered jobs on their intervals until stopped.
type Scheduler struct {
	clock   clock.Clock
	logger  log.Logger
	metrics *Metrics

	mu      sync.Mutex
	jobs    []entry
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a Scheduler. Jobs are registered before Start.
func New(clk clock.Clock, logger log.Logger) *Scheduler {
	return &Scheduler{
		clock:   clk,
		logger:  logger.With("component", "scheduler"),
		metrics: NewMetrics(),
	}
}

// Register adds a named job. Registering after Start is an error.
func (s *Scheduler) Register(name string, interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: job %q: interval must be positive, got %s", name, interval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler: cannot register %q while running", name)
	}
	for _, e := range s.jobs {
		if e.name == name {
			return fmt.Errorf("scheduler: job %q already registered", name)
		}
	}
	s.jobs = append(s.jobs, entry{name: name, interval: interval, run: job})
	return nil
}

// Start launches one ticker goroutine per job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	for _, e := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, e)
	}
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

func (s *Scheduler) loop(ctx context.Context, e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.invoke(e)
		}
	}
}

// RunJob invokes a registered job once, synchronously, with the current clock
// time. Used by tests and operational tooling to force a tick.
func (s *Scheduler) RunJob(name string) error {
	s.mu.Lock()
	var found *entry
	for i := range s.jobs {
		if s.jobs[i].name == name {
			found = &s.jobs[i]
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		return fmt.Errorf("scheduler: unknown job %q", name)
	}
	s.invoke(*found)
	return nil
}

func (s *Scheduler) invoke(e entry) {
	start := time.Now()
	defer func() {
		s.metrics.TickDuration.WithLabelValues(e.name).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			s.metrics.TicksTotal.WithLabelValues(e.name, "panic").Inc()
			s.metrics.TickFailures.WithLabelValues(e.name).Inc()
			s.logger.Error("recovered panic in periodic job", "job", e.name, "panic", r)
		}
	}()

	if err := e.run(s.clock.Now()); err != nil {
		s.metrics.TicksTotal.WithLabelValues(e.name, "failed").Inc()
		s.metrics.TickFailures.WithLabelValues(e.name).Inc()
		s.logger.Error("periodic job failed", "job", e.name, "error", err)
		return
	}
	s.metrics.TicksTotal.WithLabelValues(e.name, "success").Inc()
}

// Stop halts all job loops and waits for in-flight ticks to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}
