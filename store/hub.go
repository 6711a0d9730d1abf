package store

import (
	"sync"
)

// Hub fans snapshots out to subscribers per collection. Each subscriber
// channel holds at most one snapshot: a newer one replaces an undelivered
// older one, so slow readers skip versions but always end on the latest.
type Hub struct {
	mu          sync.Mutex
	subscribers map[Collection]map[chan Snapshot]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[Collection]map[chan Snapshot]struct{}),
	}
}

// Subscribe registers a subscriber and returns its channel and a cleanup
// function that unregisters and closes it.
func (h *Hub) Subscribe(coll Collection) (chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if h.subscribers[coll] == nil {
		h.subscribers[coll] = make(map[chan Snapshot]struct{})
	}
	h.subscribers[coll][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[coll], ch)
			close(ch)
			if len(h.subscribers[coll]) == 0 {
				delete(h.subscribers, coll)
			}
		})
	}
	return ch, cleanup
}

func (h *Hub) Publish(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[snap.Collection] {
		offer(ch, snap)
	}
}

// deliver sends to one subscriber if it is still registered.
func (h *Hub) deliver(ch chan Snapshot, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[snap.Collection][ch]; ok {
		offer(ch, snap)
	}
}

func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

func (h *Hub) SubscriberCount(coll Collection) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[coll])
}
