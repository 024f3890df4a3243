package scheduler

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the scheduler.
type Metrics struct {
	TicksTotal   *prometheus.CounterVec
	TickFailures *prometheus.CounterVec
	TickDuration *prometheus.HistogramVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers scheduler metrics (singleton pattern).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			TicksTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "scheduler",
					Name:      "ticks_total",
					Help:      "Total number of periodic job invocations",
				},
				[]string{"job", "status"},
			),
			TickFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "scheduler",
					Name:      "tick_failures_total",
					Help:      "Total number of failed job invocations, including recovered panics",
				},
				[]string{"job"},
			),
			TickDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "lumen",
					Subsystem: "scheduler",
					Name:      "tick_duration_seconds",
					Help:      "Periodic job execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"job"},
			),
		}
	})
	return metrics
}
