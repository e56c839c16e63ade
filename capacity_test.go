package ringvec

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveNoop(t *testing.T) {
	v := wrapped(6, 3, 1, 2, 3, 4, 5)
	before := append([]int(nil), v.buf...)

	require.NoError(t, v.Reserve(0))
	require.NoError(t, v.Reserve(6))
	assert.Equal(t, 6, v.Capacity())
	assert.Equal(t, before, v.buf)
	assert.Equal(t, 3, v.start)
	assert.Equal(t, uint64(0), v.stats.Reserves)

	assert.ErrorIs(t, v.Reserve(-1), ErrInvalidArgument)
}

func TestReserveOneMore(t *testing.T) {
	v := new(RingVector[int])
	require.NoError(t, v.PushSlice(seq(1, 5)))
	capacity := v.Capacity()

	require.NoError(t, v.Reserve(capacity+1))
	assert.Equal(t, capacity+1, v.Capacity())
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, seq(1, 5), v.ToSlice())
}

func TestReserveReallocKeepsStart(t *testing.T) {
	// slots: [4 5 _ _ _ _ 1 2 3], two circulated elements
	v := wrapped(9, 6, 1, 2, 3, 4, 5)
	require.Equal(t, 2, v.circulated())

	require.NoError(t, v.Reserve(11))
	assert.Equal(t, 11, v.Capacity())
	assert.Equal(t, 6, v.start)
	assert.Equal(t, 0, v.circulated())
	assert.Equal(t, seq(1, 5), v.ToSlice())
	// vacated low slots are cleared
	assert.Equal(t, []int{0, 0}, v.buf[:2])
	assert.Equal(t, uint64(1), v.stats.Reallocs)
	assert.Equal(t, uint64(0), v.stats.FreshAllocs)
	requireValid(t, v)
}

func TestReserveFreshAllocation(t *testing.T) {
	// four circulated elements but only two new slots
	v := wrapped(6, 4, 1, 2, 3, 4, 5, 6)
	require.Equal(t, 4, v.circulated())

	require.NoError(t, v.Reserve(8))
	assert.Equal(t, 8, v.Capacity())
	assert.Equal(t, 0, v.start)
	assert.Equal(t, seq(1, 6), v.buf[:6])
	assert.Equal(t, seq(1, 6), v.ToSlice())
	assert.Equal(t, uint64(1), v.stats.FreshAllocs)
	requireValid(t, v)
}

func TestReserveUnwrapped(t *testing.T) {
	v := wrapped(6, 2, 1, 2, 3)
	require.NoError(t, v.Reserve(100))
	assert.Equal(t, 2, v.start)
	assert.Equal(t, seq(1, 3), v.ToSlice())
}

func TestReserveOverflow(t *testing.T) {
	v := new(RingVector[int64])
	assert.ErrorIs(t, v.Reserve(math.MaxInt), ErrCapacityOverflow)
	assert.Equal(t, 0, v.Capacity())

	// zero sized elements never overflow the byte count
	assert.NoError(t, checkBytes[struct{}](math.MaxInt))
	assert.NoError(t, checkBytes[int64](1024))
	assert.ErrorIs(t, checkBytes[int64](math.MaxInt/4), ErrCapacityOverflow)
}

func TestReserveAllocationFailure(t *testing.T) {
	v := wrapped(6, 4, 1, 2, 3, 4, 5, 6)
	v.alloc = &BoundedAllocator[int]{Limit: 7}
	before := append([]int(nil), v.buf...)

	// both branches refuse and leave the vector untouched
	assert.ErrorIs(t, v.Reserve(8), ErrAllocationFailure)
	assert.Equal(t, before, v.buf)
	assert.Equal(t, 4, v.start)
	assert.Equal(t, 6, v.Len())

	v2 := wrapped(6, 1, 1, 2)
	v2.alloc = &BoundedAllocator[int]{Limit: 7}
	assert.ErrorIs(t, v2.Reserve(9), ErrAllocationFailure)
	assert.Equal(t, 6, v2.Capacity())
	assert.Equal(t, []int{1, 2}, v2.ToSlice())
	assert.Equal(t, uint64(2), v.stats.AllocFailures+v2.stats.AllocFailures)
}

func TestGrowHalvingRetry(t *testing.T) {
	v := new(RingVector[int])
	stats := newStats()
	v.SetStats(stats)
	require.NoError(t, v.SetAllocator(&BoundedAllocator[int]{Limit: 12}))

	for i := 0; i < 12; i++ {
		require.NoError(t, v.Push(i))
	}
	// 5 -> 10, then 20 and 15 are refused before settling on 12
	assert.Equal(t, 12, v.Capacity())
	assert.Equal(t, uint64(2), stats.GrowRetries)

	err := v.Push(12)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 12, v.Len())
	assert.Equal(t, 12, v.Capacity())
	assert.Equal(t, seq(0, 11), v.ToSlice())
	assert.Equal(t, uint64(1), stats.AllocFailures)
}

func TestGrowSingleAttempt(t *testing.T) {
	v := new(RingVector[int])
	v.SetStats(newStats())
	v.SetGrowthPolicy(GrowthSingle)
	require.NoError(t, v.SetAllocator(&BoundedAllocator[int]{Limit: 12}))

	require.NoError(t, v.PushSlice(seq(1, 10)))
	assert.Equal(t, 10, v.Capacity())
	assert.ErrorIs(t, v.Push(11), ErrAllocationFailure)
	assert.Equal(t, uint64(0), v.stats.GrowRetries)
	assert.Equal(t, 10, v.Len())
}

func TestGrowLargeBatch(t *testing.T) {
	v := new(RingVector[int])
	v.SetStats(newStats())
	require.NoError(t, v.Push(0))
	// addition doubles from 5 until it covers the batch
	require.NoError(t, v.PushSlice(seq(1, 30)))
	assert.Equal(t, 45, v.Capacity())
	assert.Equal(t, seq(0, 30), v.ToSlice())
}

func TestGrowWhileWrapped(t *testing.T) {
	v := new(RingVector[int])
	v.SetStats(newStats())
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}
	for i := 0; i < 3; i++ {
		_, err := v.Unshift()
		require.NoError(t, err)
	}
	for i := 5; i < 20; i++ {
		require.NoError(t, v.Push(i))
		requireValid(t, v)
	}
	assert.Equal(t, seq(3, 19), v.ToSlice())
}

func TestHeapAllocator(t *testing.T) {
	a := HeapAllocator[int]{}
	buf, err := a.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, buf, 4)

	copy(buf, []int{1, 2, 3, 4})
	buf, err = a.Reallocate(buf, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 0, 0, 0, 0}, buf)

	_, err = a.Allocate(-1)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	a.Free(buf)
}

// shortAllocator hands out half of what is asked for.
type shortAllocator struct{ HeapAllocator[int] }

func (shortAllocator) Allocate(n int) ([]int, error) {
	return make([]int, n/2), nil
}

func (a shortAllocator) Reallocate(buf []int, n int) ([]int, error) {
	nbuf, _ := a.Allocate(n)
	copy(nbuf, buf)
	return nbuf, nil
}

func TestReserveShortBuffer(t *testing.T) {
	v := new(RingVector[int])
	v.SetStats(newStats())
	require.NoError(t, v.SetAllocator(shortAllocator{}))

	assert.ErrorIs(t, v.Push(0), ErrAllocationFailure)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Capacity())
	requireValid(t, v)

	// fresh allocation branch
	w := wrapped(6, 4, 1, 2, 3, 4, 5, 6)
	w.alloc = shortAllocator{}
	before := append([]int(nil), w.buf...)
	assert.ErrorIs(t, w.Reserve(8), ErrAllocationFailure)
	assert.Equal(t, before, w.buf)
	assert.Equal(t, 4, w.start)

	// reallocation branch with circulated elements
	w = wrapped(9, 6, 1, 2, 3, 4, 5)
	w.alloc = shortAllocator{}
	assert.ErrorIs(t, w.Reserve(11), ErrAllocationFailure)
	assert.Equal(t, 9, w.Capacity())
	assert.Equal(t, seq(1, 5), w.ToSlice())
	requireValid(t, w)
}

func TestReserveErrorMessage(t *testing.T) {
	v := wrapped(6, 1, 1, 2)
	v.alloc = &BoundedAllocator[int]{Limit: 7}
	err := v.Reserve(9)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrAllocationFailure.Error()), err.Error())
	assert.Contains(t, err.Error(), "exceeds limit 7")
}

func TestGrowOverflowIsNotAllocFailure(t *testing.T) {
	v := new(RingVector[int64])
	stats := newStats()
	v.SetStats(stats)

	err := v.grow(math.MaxInt / 4)
	assert.ErrorIs(t, err, ErrCapacityOverflow)
	assert.Equal(t, uint64(0), stats.AllocFailures)
	assert.Equal(t, 0, v.Capacity())

	assert.ErrorIs(t, v.Reserve(math.MaxInt), ErrCapacityOverflow)
	assert.Equal(t, uint64(0), stats.AllocFailures)
}
