package consent

import (
	"context"
	"sort"
	"sync"
)

// Event is published when consent is decided or revoked.
type Event struct {
	Preferences Preferences
	Revoked     bool
}

// Listener observes consent events.
type Listener func(ctx context.Context, ev Event)

// Bus decouples the consent store from the consumers that react to a
// decision (ad loader, analytics loader, metrics). The zero value is ready
// to use.
type Bus struct {
	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function removing it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[uint64]Listener)
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every listener in subscription order.
// Listeners run synchronously on the caller's goroutine.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.RLock()
	ids := make([]uint64, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, ev)
	}
}
