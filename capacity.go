package ringvec

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// Reserve makes room for at least capacity elements. Existing elements keep
// their logical indices. Requests not larger than Capacity() are no-ops.
func (v *RingVector[T]) Reserve(capacity int) error {
	if !v.valid() {
		return errors.WithStack(ErrInvalidContainer)
	}
	if capacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	if err := v.reserve(capacity); err != nil {
		if errors.Is(err, ErrAllocationFailure) {
			atomic.AddUint64(&v.statsOf().AllocFailures, 1)
			log.Warningf("reserve %d slots: %v", capacity, err)
		}
		return err
	}
	return nil
}

// checkBytes verifies that n elements of T fit in the address space.
func checkBytes[T any](n int) error {
	var e T
	esize := uint64(unsafe.Sizeof(e))
	if esize == 0 {
		return nil
	}
	bytes := uint64(n) * esize
	if bytes/esize != uint64(n) || bytes > math.MaxInt {
		return errors.Wrapf(ErrCapacityOverflow, "%d elements of %d bytes", n, esize)
	}
	return nil
}

// reserve grows buf to capacity slots.
//
// Wrapped elements [0, circ) must end up contiguous with [start, oldCap).
// When they fit into the added slots a Reallocate plus one bulk copy into the
// new tail does it and start is kept. Otherwise a fresh buffer is allocated
// and both ranges are copied to its front, which resets start to 0.
func (v *RingVector[T]) reserve(capacity int) error {
	oldCap := len(v.buf)
	if capacity <= oldCap {
		return nil
	}
	if err := checkBytes[T](capacity); err != nil {
		return err
	}

	stats := v.statsOf()
	circ := v.circulated()
	if circ > 0 && circ > capacity-oldCap {
		nbuf, err := v.allocator().Allocate(capacity)
		if err != nil {
			return allocationError(err, "allocate %d", capacity)
		}
		if len(nbuf) < capacity {
			v.allocator().Free(nbuf)
			return errors.Wrapf(ErrAllocationFailure, "allocate %d returned %d slots", capacity, len(nbuf))
		}
		n := copy(nbuf, v.buf[v.start:])
		copy(nbuf[n:], v.buf[:circ])
		v.allocator().Free(v.buf)
		v.buf = nbuf
		v.start = 0
		atomic.AddUint64(&stats.FreshAllocs, 1)
		v.debugLog("fresh allocation to %d slots, %d circulated", capacity, circ)
	} else {
		nbuf, err := v.allocator().Reallocate(v.buf, capacity)
		if err != nil {
			return allocationError(err, "reallocate %d", capacity)
		}
		// a short buffer may alias the current one, so it is not freed
		if len(nbuf) < capacity {
			return errors.Wrapf(ErrAllocationFailure, "reallocate %d returned %d slots", capacity, len(nbuf))
		}
		v.buf = nbuf
		if circ > 0 {
			copy(v.buf[oldCap:oldCap+circ], v.buf[:circ])
			var zero T
			for i := range v.buf[:circ] {
				v.buf[i] = zero
			}
		}
		atomic.AddUint64(&stats.Reallocs, 1)
		v.debugLog("reallocated to %d slots, %d circulated", capacity, circ)
	}
	atomic.AddUint64(&stats.Reserves, 1)
	return nil
}

// allocationError attaches context to an allocator error, keeping its chain
// when it already reports ErrAllocationFailure.
func allocationError(err error, format string, args ...any) error {
	if errors.Is(err, ErrAllocationFailure) {
		return errors.WithMessagef(err, format, args...)
	}
	return errors.Wrapf(ErrAllocationFailure, format+": %v", append(args, err)...)
}

// grow makes room for count more elements, following the growth policy.
func (v *RingVector[T]) grow(count int) error {
	oldCap := len(v.buf)
	addition := oldCap
	if addition == 0 {
		addition = DefaultCapacity
	}
	for addition < count {
		if addition > math.MaxInt/2 {
			addition = count
			break
		}
		addition <<= 1
	}
	if addition > math.MaxInt-oldCap {
		addition = count
	}

	stats := v.statsOf()
	for {
		err := v.reserve(oldCap + addition)
		if err == nil {
			return nil
		}
		if v.policy == GrowthSingle || addition == count {
			if errors.Is(err, ErrAllocationFailure) {
				atomic.AddUint64(&stats.AllocFailures, 1)
			}
			log.Warningf("grow by %d slots: %v", count, err)
			return err
		}
		addition >>= 1
		if addition < count {
			addition = count
		}
		atomic.AddUint64(&stats.GrowRetries, 1)
		v.debugLog("growth refused, retrying with %d more slots", addition)
	}
}
