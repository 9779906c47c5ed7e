// Package bus provides the in-process broadcast channel views subscribe to.
//
// Events carry no payload beyond their name: a listener re-reads derived
// state from the domain store instead of trusting event ordering.
package bus

import (
	"sync"
)

// Event names a broadcast signal.
type Event string

// The full set of signals the domain store publishes.
const (
	OrderCreated    Event = "orderCreated"
	OrderUpdated    Event = "orderUpdated"
	ArticleCreated  Event = "articleCreated"
	ArticleUpdated  Event = "articleUpdated"
	ArticleDeleted  Event = "articleDeleted"
	StorageMigrated Event = "storage-migrated"
)

// Handler is a function invoked when its event fires.
type Handler func(e Event)

// Bus is a process-wide publish/subscribe channel. The zero value is not
// usable; construct with New and inject it into whoever publishes.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{handlers: map[Event][]Handler{}}
}

// Subscribe registers a handler for the given event.
func (b *Bus) Subscribe(e Event, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[e] = append(b.handlers[e], h)
}

// Publish dispatches an event synchronously to all registered listeners.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[e]))
	copy(hs, b.handlers[e])
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

// PublishAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func (b *Bus) PublishAsync(e Event) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[e]))
	copy(hs, b.handlers[e])
	b.mu.RUnlock()

	for _, h := range hs {
		go h(e)
	}
}

// Reset removes all listeners (useful in tests).
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[Event][]Handler{}
}
