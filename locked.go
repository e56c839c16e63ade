package ringvec

import "sync"

// Locked guards one RingVector with a mutex so that several goroutines can
// share it. Calls are serialized for their whole duration.
type Locked[T any] struct {
	mu  sync.Mutex
	vec RingVector[T]
}

// NewLocked creates a guarded vector with room for capacity elements.
func NewLocked[T any](capacity int) *Locked[T] {
	l := new(Locked[T])
	if capacity > 0 {
		if err := l.vec.Reserve(capacity); err != nil {
			log.Warningf("NewLocked(%d): %v", capacity, err)
		}
	}
	return l
}

// Do runs fn with exclusive access to the vector.
// fn MUST NOT retain the vector or any Ref into it after returning, and
// MUST NOT call back into l, sync.Mutex is not reentrant.
func (l *Locked[T]) Do(fn func(v *RingVector[T]) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&l.vec)
}

// Push appends value at the back.
func (l *Locked[T]) Push(value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vec.Push(value)
}

// Unshift removes and returns the element at the front.
func (l *Locked[T]) Unshift() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vec.Unshift()
}

// Len returns the number of elements.
func (l *Locked[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vec.Len()
}
