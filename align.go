package ringvec

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// rotate permutes the whole buffer in place so that buf[i] takes the value
// of buf[(start+i) mod n], following gcd(start, n) cycles with a single
// scratch element. Every slot is written exactly once.
func (v *RingVector[T]) rotate() {
	n := len(v.buf)
	count := 0
	for offset := 0; count < n; offset++ {
		index := offset
		next := wrapAdd(v.start, index, n)
		tmp := v.buf[index]
		for next != offset {
			v.buf[index] = v.buf[next]
			count++
			index = next
			next = wrapAdd(v.start, index, n)
		}
		v.buf[index] = tmp
		count++
	}
	v.start = 0
}

// align makes logical index 0 coincide with physical offset 0 so that
// buf[:size] holds the elements in order.
//
// An unwrapped run away from offset 0 just slides down. For a wrapped run,
// with little slack a full rotation is cheaper. With at least size free
// slots the wrapped head is parked in the slack just before start, the
// contiguous run slides down to 0 and the parked head is appended to it.
func (v *RingVector[T]) align() {
	if v.start == 0 {
		return
	}
	stats := v.statsOf()
	n := len(v.buf)
	circ := v.circulated()
	if circ == 0 {
		// one contiguous run, slide it down to offset 0
		copy(v.buf[:v.size], v.buf[v.start:v.start+v.size])
		var zero T
		for i := range v.buf[v.size:] {
			v.buf[v.size+i] = zero
		}
		v.start = 0
		atomic.AddUint64(&stats.Relocations, 1)
		atomic.AddUint64(&stats.ElementsMoved, uint64(v.size))
		v.debugLog("aligned by sliding %d elements", v.size)
		return
	}
	if n-v.size < v.size {
		v.rotate()
		atomic.AddUint64(&stats.Rotations, 1)
		atomic.AddUint64(&stats.ElementsMoved, uint64(n))
		v.debugLog("aligned by rotation")
		return
	}

	run := n - v.start
	parked := v.start - circ
	copy(v.buf[parked:v.start], v.buf[:circ])
	copy(v.buf[:run], v.buf[v.start:])
	copy(v.buf[run:v.size], v.buf[parked:v.start])
	var zero T
	for i := range v.buf[v.size:] {
		v.buf[v.size+i] = zero
	}
	v.start = 0
	atomic.AddUint64(&stats.Relocations, 1)
	atomic.AddUint64(&stats.ElementsMoved, uint64(v.size+circ))
	v.debugLog("aligned by relocating %d circulated", circ)
}

// Sort sorts the elements in place by cmp, which returns a negative number
// when a < b, zero when equal and a positive number when a > b. The sort is
// not guaranteed to be stable.
func (v *RingVector[T]) Sort(cmp func(a, b T) int) error {
	return v.sort(cmp, slices.SortFunc[[]T, T])
}

// SortStable is like Sort but keeps equal elements in their original order.
func (v *RingVector[T]) SortStable(cmp func(a, b T) int) error {
	return v.sort(cmp, slices.SortStableFunc[[]T, T])
}

func (v *RingVector[T]) sort(cmp func(a, b T) int, sorter func([]T, func(a, b T) int)) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	if cmp == nil {
		return errors.Wrap(ErrInvalidArgument, "nil comparator")
	}
	if v.size == 0 {
		return nil
	}
	v.align()
	sorter(v.buf[:v.size], cmp)
	return nil
}
