package events

import (
	"sync"
	"sync/atomic"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

// Hub fans record events out to live subscribers. A subscriber whose
// buffer is full misses the event; the store is never blocked.
type Hub struct {
	mu      sync.RWMutex
	subs    map[chan record.Event]struct{}
	buffer  int
	dropped atomic.Uint64
}

var _ record.Observer = (*Hub)(nil)

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{subs: make(map[chan record.Event]struct{}), buffer: buffer}
}

// Subscribe registers a new subscriber. The returned cancel func closes the
// channel and must be called once the subscriber is done.
func (h *Hub) Subscribe() (<-chan record.Event, func()) {
	ch := make(chan record.Event, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Observe delivers e to every subscriber without blocking.
func (h *Hub) Observe(e record.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for full buffers.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }
