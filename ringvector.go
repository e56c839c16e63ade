// Package ringvec provides RingVector, a growable array with deque-like
// cost at both ends, stored in a circular buffer.
package ringvec

import "github.com/pkg/errors"

// DefaultCapacity is the first growth step of an unallocated RingVector.
const DefaultCapacity = 5

// GrowthPolicy decides what happens when the allocator refuses a growth step.
type GrowthPolicy int

const (
	// GrowthHalving halves the requested addition and retries until even
	// the exact number of missing slots is refused.
	GrowthHalving GrowthPolicy = iota
	// GrowthSingle gives up after the first refused request.
	GrowthSingle
)

// RingVector is a dynamic array of T stored in a ring (circular) buffer.
// Logical index i lives at physical offset (start+i) mod Capacity().
//
// The zero value is an empty RingVector ready to use. A RingVector is not
// safe for concurrent use, see Locked.
//
// References returned by Ref are invalidated by any operation that may
// change the capacity or move elements.
type RingVector[T any] struct {
	start int // physical offset of logical element 0
	size  int // number of live elements
	buf   []T // len(buf) is the capacity, nil when unallocated

	alloc  Allocator[T]
	policy GrowthPolicy
	stats  *Stats
}

// NewRingVector creates a RingVector with room for capacity elements.
// If the reservation fails the vector is returned unallocated.
func NewRingVector[T any](capacity int) *RingVector[T] {
	v := new(RingVector[T])
	if capacity > 0 {
		if err := v.Reserve(capacity); err != nil {
			log.Warningf("NewRingVector(%d): %v", capacity, err)
		}
	}
	return v
}

// SetAllocator replaces the storage allocator. It is only permitted while
// the vector holds no storage.
func (v *RingVector[T]) SetAllocator(a Allocator[T]) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	if a == nil {
		return errors.Wrap(ErrInvalidArgument, "nil allocator")
	}
	if v.buf != nil {
		return errors.Wrap(ErrInvalidArgument, "allocator change on allocated vector")
	}
	v.alloc = a
	return nil
}

// SetGrowthPolicy sets how growth reacts to allocation failures.
func (v *RingVector[T]) SetGrowthPolicy(p GrowthPolicy) {
	if v != nil {
		v.policy = p
	}
}

// SetStats directs counters to s instead of DefaultStats.
func (v *RingVector[T]) SetStats(s *Stats) {
	if v != nil {
		v.stats = s
	}
}

func (v *RingVector[T]) allocator() Allocator[T] {
	if v.alloc == nil {
		return HeapAllocator[T]{}
	}
	return v.alloc
}

func (v *RingVector[T]) statsOf() *Stats {
	if v.stats == nil {
		return DefaultStats
	}
	return v.stats
}

// valid checks the bookkeeping invariants every public entry point relies on.
func (v *RingVector[T]) valid() bool {
	if v == nil {
		return false
	}
	if len(v.buf) == 0 {
		return v.buf == nil && v.size == 0 && v.start == 0
	}
	return v.size >= 0 && v.size <= len(v.buf) && v.start >= 0 && v.start < len(v.buf)
}

// Len returns the number of elements, 0 for an invalid vector.
func (v *RingVector[T]) Len() int {
	if !v.valid() {
		return 0
	}
	return v.size
}

// Size is an alias of Len.
func (v *RingVector[T]) Size() int { return v.Len() }

// Capacity returns the number of allocated slots.
func (v *RingVector[T]) Capacity() int {
	if !v.valid() {
		return 0
	}
	return len(v.buf)
}

// Empty reports whether the vector holds no elements.
func (v *RingVector[T]) Empty() bool {
	return v.Len() == 0
}

// Ref returns a pointer to the element at index, or nil when index is out
// of range.
func (v *RingVector[T]) Ref(index int) *T {
	if !v.valid() || index < 0 || index >= v.size {
		return nil
	}
	return v.slot(index)
}

// Get returns the element at index. ok is false when index is out of range.
func (v *RingVector[T]) Get(index int) (value T, ok bool) {
	if p := v.Ref(index); p != nil {
		return *p, true
	}
	return value, false
}

// First returns the element at the front.
func (v *RingVector[T]) First() (T, bool) {
	return v.Get(0)
}

// Last returns the element at the back.
func (v *RingVector[T]) Last() (T, bool) {
	return v.Get(v.Len() - 1)
}

// Assign overwrites the element at index.
func (v *RingVector[T]) Assign(index int, value T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	if index < 0 || index >= v.size {
		return errors.Wrapf(ErrInvalidArgument, "index %d out of range [0,%d)", index, v.size)
	}
	*v.slot(index) = value
	return nil
}

// Swap exchanges the elements at i and j.
func (v *RingVector[T]) Swap(i, j int) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	if i < 0 || i >= v.size || j < 0 || j >= v.size {
		return errors.Wrapf(ErrInvalidArgument, "swap %d,%d out of range [0,%d)", i, j, v.size)
	}
	if i != j {
		a, b := v.slot(i), v.slot(j)
		tmp := *a
		*a = *b
		*b = tmp
	}
	return nil
}

// ForEach calls fn for every element in logical order until fn returns
// false.
func (v *RingVector[T]) ForEach(fn func(T) bool) {
	if !v.valid() || v.size == 0 {
		return
	}
	if n := v.circulated(); n == 0 {
		// Contiguous data: [start ... start+size)
		for _, e := range v.buf[v.start : v.start+v.size] {
			if !fn(e) {
				return
			}
		}
	} else {
		// Wrapped data: [start ... end) + [0 ... n)
		for _, e := range v.buf[v.start:] {
			if !fn(e) {
				return
			}
		}
		for _, e := range v.buf[:n] {
			if !fn(e) {
				return
			}
		}
	}
}

// ToSlice copies the elements into a new slice in logical order.
func (v *RingVector[T]) ToSlice() []T {
	out := make([]T, 0, v.Len())
	v.ForEach(func(e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Clear releases the storage and empties the vector. The allocator, growth
// policy and stats sink are kept, so the vector can be reused directly.
func (v *RingVector[T]) Clear() {
	if !v.valid() {
		return
	}
	if v.buf != nil {
		v.allocator().Free(v.buf)
	}
	v.buf = nil
	v.start = 0
	v.size = 0
}
