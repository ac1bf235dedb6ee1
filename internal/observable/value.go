// Package observable holds a value and notifies subscribers when it changes.
// The owner of a Value is its only writer; everyone else reads through Get
// or Subscribe.
package observable

import "sync"

// Value delivers changes to subscribers in the order they were stored.
// Subscribers run synchronously and must not write to the same Value.
type Value[T any] struct {
	// pub serializes store plus delivery so a slow subscriber call cannot
	// be overtaken by a later value.
	pub    sync.Mutex
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]func(T)
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, subs: make(map[int]func(T))}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores next and calls every subscriber with it. Readers are not
// blocked while subscribers run.
func (v *Value[T]) Set(next T) {
	v.Update(func(T) T { return next })
}

// Update applies fn to the current value atomically and publishes the result.
func (v *Value[T]) Update(fn func(T) T) {
	v.pub.Lock()
	defer v.pub.Unlock()

	v.mu.Lock()
	next := fn(v.value)
	v.value = next
	subs := make([]func(T), 0, len(v.subs))
	for _, s := range v.subs {
		subs = append(subs, s)
	}
	v.mu.Unlock()

	for _, s := range subs {
		s(next)
	}
}

// Subscribe registers fn and returns a func that removes it.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
