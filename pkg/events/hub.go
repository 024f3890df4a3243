package events

import (
	"sync"
	"sync/atomic"

	"cosmossdk.io/log"

	"github.com/lumen-chain/lumen/pkg/clock"
)

// DefaultSubscriberBuffer is the channel depth given to subscribers that do
// not ask for a specific one.
const DefaultSubscriberBuffer = 256

// Subscription is one consumer's view of the event stream.
type Subscription struct {
	C <-chan Event

	hub *Hub
	ch  chan Event
}

// Close detaches the subscription from the hub and closes its channel.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans events out to subscribers. Publishing never blocks: a subscriber
// whose buffer is full misses the event, and the miss is counted. The hub is
// safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	closed  bool
	dropped atomic.Uint64

	clock  clock.Clock
	logger log.Logger
}

// NewHub creates an event hub.
func NewHub(clk clock.Clock, logger log.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		clock:  clk,
		logger: logger.With("component", "events"),
	}
}

// Subscribe registers a consumer with the given channel buffer. A buffer of
// zero or less uses DefaultSubscriberBuffer.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	sub := &Subscription{hub: h, ch: make(chan Event, buffer)}
	sub.C = sub.ch

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Emit stamps the event and delivers it to every subscriber that has buffer
// room. Implements Emitter.
func (h *Hub) Emit(event Event) {
	event.Time = h.clock.Now()

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
			h.dropped.Add(1)
			h.logger.Debug("dropped event for slow subscriber", "type", event.Type)
		}
	}
}

// Dropped reports how many events were discarded due to full subscriber
// buffers since the hub was created.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close detaches and closes all subscriptions. Further Emit calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}
