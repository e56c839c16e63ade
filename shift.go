package ringvec

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
)

// insert opens a gap of len(values) slots at logical index and fills it.
func (v *RingVector[T]) insert(index int, values []T) error {
	count := len(values)
	if index < 0 || index > v.size {
		return errors.Wrapf(ErrInvalidArgument, "insert index %d out of range [0,%d]", index, v.size)
	}
	if count > math.MaxInt-v.size {
		return errors.Wrapf(ErrCapacityOverflow, "size %d + %d", v.size, count)
	}
	if count == 0 {
		return nil
	}
	if v.size+count > len(v.buf) {
		if err := v.grow(count); err != nil {
			return err
		}
	}

	stats := v.statsOf()
	if v.size > 0 {
		switch {
		case index == 0:
			v.start = wrapSub(v.start, count, len(v.buf))
		case index < v.size-index:
			// fewer elements in front: regress start and pull the head back
			v.start = wrapSub(v.start, count, len(v.buf))
			for j := 0; j < index; j++ {
				v.move(j, j+count)
			}
			atomic.AddUint64(&stats.HeadMoves, 1)
			atomic.AddUint64(&stats.ElementsMoved, uint64(index))
		case index < v.size:
			// copy from the end backwards so nothing is overwritten early
			for j := v.size - 1; j >= index; j-- {
				v.move(j+count, j)
			}
			atomic.AddUint64(&stats.TailMoves, 1)
			atomic.AddUint64(&stats.ElementsMoved, uint64(v.size-index))
		}
	}
	v.size += count

	for k, val := range values {
		*v.slot(index + k) = val
	}
	v.debugLog("inserted %d at %d", count, index)
	return nil
}

// remove deletes count elements starting at logical index, copying them to
// out first when out is not nil.
func (v *RingVector[T]) remove(index, count int, out []T) error {
	if index < 0 || count < 0 || count > v.size || v.size-count < index {
		return errors.Wrapf(ErrInvalidArgument, "remove [%d,+%d) out of range [0,%d)", index, count, v.size)
	}
	if out != nil && len(out) < count {
		return errors.Wrapf(ErrInvalidArgument, "output holds %d of %d elements", len(out), count)
	}
	if count == 0 {
		return nil
	}
	if out != nil {
		for k := 0; k < count; k++ {
			out[k] = *v.slot(index + k)
		}
	}

	stats := v.statsOf()
	v.size -= count
	after := v.size - index
	switch {
	case v.size == 0:
		v.zero(index, count)
	case index == 0:
		v.zero(0, count)
		v.start = wrapAdd(v.start, count, len(v.buf))
	case after == 0:
		v.zero(index, count)
	case index < after:
		// fewer elements in front: push the head forward over the gap
		for j := index - 1; j >= 0; j-- {
			v.move(j+count, j)
		}
		v.zero(0, count)
		v.start = wrapAdd(v.start, count, len(v.buf))
		atomic.AddUint64(&stats.HeadMoves, 1)
		atomic.AddUint64(&stats.ElementsMoved, uint64(index))
	default:
		for j := index; j < v.size; j++ {
			v.move(j, j+count)
		}
		v.zero(v.size, count)
		atomic.AddUint64(&stats.TailMoves, 1)
		atomic.AddUint64(&stats.ElementsMoved, uint64(after))
	}
	v.debugLog("removed %d at %d", count, index)
	return nil
}

// Insert inserts values before the element at index. index == Len() appends.
func (v *RingVector[T]) Insert(index int, values ...T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.insert(index, values)
}

// Erase removes count elements starting at index. When out is not nil the
// removed elements are copied into it first; it must hold count elements.
func (v *RingVector[T]) Erase(index, count int, out []T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.remove(index, count, out)
}

// Push appends value at the back.
func (v *RingVector[T]) Push(value T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.insert(v.size, []T{value})
}

// PushSlice appends values at the back, in order.
func (v *RingVector[T]) PushSlice(values []T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.insert(v.size, values)
}

// Pop removes and returns the element at the back.
func (v *RingVector[T]) Pop() (value T, err error) {
	if !v.valid() {
		return value, errors.WithStack(ErrInvalidContainer)
	}
	var out [1]T
	if err = v.remove(v.size-1, 1, out[:]); err != nil {
		return value, err
	}
	return out[0], nil
}

// PopSlice removes the last n elements and returns them in logical order.
func (v *RingVector[T]) PopSlice(n int) ([]T, error) {
	if !v.valid() {
		return nil, errors.WithStack(ErrInvalidContainer)
	}
	if n < 0 || n > v.size {
		return nil, errors.Wrapf(ErrInvalidArgument, "pop %d of %d", n, v.size)
	}
	out := make([]T, n)
	if err := v.remove(v.size-n, n, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Shift inserts value at the front.
func (v *RingVector[T]) Shift(value T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.insert(0, []T{value})
}

// ShiftSlice inserts values at the front, keeping their order.
func (v *RingVector[T]) ShiftSlice(values []T) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	return v.insert(0, values)
}

// Unshift removes and returns the element at the front.
func (v *RingVector[T]) Unshift() (value T, err error) {
	if !v.valid() {
		return value, errors.WithStack(ErrInvalidContainer)
	}
	var out [1]T
	if err = v.remove(0, 1, out[:]); err != nil {
		return value, err
	}
	return out[0], nil
}

// UnshiftSlice removes the first n elements and returns them in order.
func (v *RingVector[T]) UnshiftSlice(n int) ([]T, error) {
	if !v.valid() {
		return nil, errors.WithStack(ErrInvalidContainer)
	}
	if n < 0 || n > v.size {
		return nil, errors.Wrapf(ErrInvalidArgument, "unshift %d of %d", n, v.size)
	}
	out := make([]T, n)
	if err := v.remove(0, n, out); err != nil {
		return nil, err
	}
	return out, nil
}
