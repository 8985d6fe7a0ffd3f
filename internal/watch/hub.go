// Package watch provides change notification for store collections. Writers
// call Notify after a successful mutation; watchers re-run their query on
// each signal and push a full-replacement snapshot to their consumer. There
// is no diffing contract: every delivered value is the authoritative current
// state for that query.
package watch

import "sync"

// Hub fans change signals out to collection subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan struct{}
	nextID int
	closed bool
}

// NewHub creates an empty hub.
// Parameters: none.
// Returns:
//   - *Hub: initialized hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscription is one subscriber's handle on a collection. The owner must
// call Cancel exactly once when done; after Cancel no further signals are
// delivered on C.
type Subscription struct {
	// C receives one signal per batch of changes. Signals coalesce: a slow
	// consumer sees at least one signal for any number of missed changes.
	C <-chan struct{}

	cancel func()
	once   sync.Once
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Subscribe registers a subscriber on the named collection.
// Parameters:
//   - collection: logical collection name (e.g. "jobs").
// Returns:
//   - *Subscription: handle carrying the signal channel.
func (h *Hub) Subscribe(collection string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, 1)
	if h.closed {
		close(ch)
		return &Subscription{C: ch, cancel: func() {}}
	}

	id := h.nextID
	h.nextID++
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan struct{})
	}
	h.subs[collection][id] = ch

	return &Subscription{
		C: ch,
		cancel: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[collection]; ok {
				if c, ok := set[id]; ok {
					delete(set, id)
					close(c)
				}
			}
		},
	}
}

// Notify signals every subscriber of the collection. Non-blocking: a
// subscriber with a pending signal is skipped, coalescing bursts.
// Parameters:
//   - collection: logical collection name that changed.
// Returns: none.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close cancels every subscription and rejects future ones. Used at
// process shutdown to tear down all active watchers.
// Parameters: none.
// Returns: none.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, set := range h.subs {
		for id, ch := range set {
			delete(set, id)
			close(ch)
		}
	}
}
