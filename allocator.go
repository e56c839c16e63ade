package ringvec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Allocator supplies backing storage to a RingVector.
//
// A failed Allocate or Reallocate must leave its input untouched: the
// container keeps using the old buffer when growth is refused.
type Allocator[T any] interface {
	// Allocate returns a fresh buffer of exactly n slots.
	Allocate(n int) ([]T, error)
	// Reallocate returns a buffer of n slots whose first len(buf) slots
	// hold the contents of buf. It may return buf itself, resliced.
	Reallocate(buf []T, n int) ([]T, error)
	// Free releases a buffer previously returned by this allocator.
	Free(buf []T)
}

// HeapAllocator allocates from the Go heap.
type HeapAllocator[T any] struct{}

// Allocate returns n zeroed slots from make.
func (HeapAllocator[T]) Allocate(n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrap(ErrAllocationFailure, fmt.Sprint(r))
		}
	}()
	return make([]T, n), nil
}

// Reallocate reslices buf when its capacity suffices, otherwise copies it
// into a fresh buffer.
func (a HeapAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	if n <= cap(buf) {
		return buf[:n], nil
	}
	nbuf, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	copy(nbuf, buf)
	return nbuf, nil
}

// Free is a no-op, the garbage collector reclaims buf once unreferenced.
func (HeapAllocator[T]) Free(buf []T) {}

// BoundedAllocator refuses buffers larger than Limit slots and delegates
// everything else to Next (the heap when Next is nil).
type BoundedAllocator[T any] struct {
	Limit int
	Next  Allocator[T]
}

func (a *BoundedAllocator[T]) next() Allocator[T] {
	if a.Next == nil {
		return HeapAllocator[T]{}
	}
	return a.Next
}

// Allocate fails for n above Limit.
func (a *BoundedAllocator[T]) Allocate(n int) ([]T, error) {
	if n > a.Limit {
		return nil, errors.Wrapf(ErrAllocationFailure, "%d slots exceeds limit %d", n, a.Limit)
	}
	return a.next().Allocate(n)
}

// Reallocate fails for n above Limit and leaves buf untouched.
func (a *BoundedAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	if n > a.Limit {
		return nil, errors.Wrapf(ErrAllocationFailure, "%d slots exceeds limit %d", n, a.Limit)
	}
	return a.next().Reallocate(buf, n)
}

// Free hands buf back to Next.
func (a *BoundedAllocator[T]) Free(buf []T) {
	a.next().Free(buf)
}
