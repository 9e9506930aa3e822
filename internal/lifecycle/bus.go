package lifecycle

import "sync"

// Bus delivers lifecycle events from the provisioning call to subscribers
// for one creation attempt. It is created per attempt and passed by
// reference, so subscriptions cannot leak across unrelated attempts.
// Delivery is synchronous and in publish order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewBus creates an empty event bus for one creation attempt.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers fn to be invoked once per published event and
// returns an unsubscribe function. Unsubscribing is idempotent; a removed
// callback is never invoked again.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to all current subscribers in registration order of
// their IDs. Callbacks run on the publisher's goroutine.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
