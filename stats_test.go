package ringvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCopyReset(t *testing.T) {
	s := newStats()
	v := new(RingVector[int])
	v.SetStats(s)

	require.NoError(t, v.PushSlice(seq(1, 8)))
	for i := 0; i < 4; i++ {
		_, err := v.Unshift()
		require.NoError(t, err)
	}
	require.NoError(t, v.PushSlice(seq(9, 12)))
	require.NoError(t, v.Sort(cmpInt))

	c := s.Copy()
	assert.Equal(t, uint64(1), c.Reserves)
	assert.Equal(t, uint64(1), c.Reallocs)
	assert.Equal(t, uint64(1), c.Rotations+c.Relocations)
	assert.Len(t, s.ToSlice(), len(s.Header()))

	s.Reset()
	assert.Equal(t, *newStats(), *s.Copy())
}

func TestDefaultStats(t *testing.T) {
	before := DefaultStats.Copy().Reserves
	v := new(RingVector[int])
	require.NoError(t, v.Push(1))
	assert.Greater(t, DefaultStats.Copy().Reserves, before)
}
