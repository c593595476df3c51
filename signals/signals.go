package signals

import "sync"

// Topic is an explicit, ordered subscriber list. The zero value is ready to use.
// Publish calls subscribers synchronously, in subscription order, outside the lock,
// so a subscriber may subscribe, unsubscribe or publish again.
// No build tags, so it is testable outside WASM.
type Topic[T any] struct {
	mu   sync.RWMutex
	next uint64
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn. The returned func removes it and is safe to call twice.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	id := t.next
	t.subs = append(t.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every current subscriber.
func (t *Topic[T]) Publish(v T) {
	t.mu.RLock()
	subs := make([]subscriber[T], len(t.subs))
	copy(subs, t.subs)
	t.mu.RUnlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}

// Signal[T] is a reactive value that notifies subscribers when changed.
type Signal[T any] struct {
	mu      sync.RWMutex
	value   T
	changes Topic[T]
}

// NewSignal creates a Signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all subscribers with the new value.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()

	s.changes.Publish(v)
}

// Update atomically replaces the value with fn(current), then notifies.
func (s *Signal[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	s.mu.Unlock()

	s.changes.Publish(v)
	return v
}

// Subscribe registers a callback fired with every new value.
// Call the returned func in OnDestroy to stop receiving values.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}
