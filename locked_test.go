package ringvec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedConcurrentPush(t *testing.T) {
	l := NewLocked[int](4)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				assert.NoError(t, l.Push(g*1000+i))
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 4000, l.Len())

	// every producer's values come out in its own order
	last := make(map[int]int)
	for l.Len() > 0 {
		x, err := l.Unshift()
		require.NoError(t, err)
		g := x / 1000
		if prev, ok := last[g]; ok {
			require.Less(t, prev, x)
		}
		last[g] = x
	}
	assert.Len(t, last, 8)
}

func TestLockedDo(t *testing.T) {
	l := NewLocked[int](0)
	require.NoError(t, l.Do(func(v *RingVector[int]) error {
		if err := v.PushSlice([]int{3, 1, 2}); err != nil {
			return err
		}
		return v.Sort(cmpInt)
	}))

	var got []int
	require.NoError(t, l.Do(func(v *RingVector[int]) error {
		got = v.ToSlice()
		return nil
	}))
	assert.Equal(t, []int{1, 2, 3}, got)

	err := l.Do(func(v *RingVector[int]) error { return v.Erase(5, 1, nil) })
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
