package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntRange(1, 48), b.IntRange(1, 48))
		require.Equal(t, a.Normal(1200, 300), b.Normal(1200, 300))
		require.Equal(t, a.Uniform(0.05, 0.30), b.Uniform(0.05, 0.30))
	}
}

func TestIntRangeBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(0, 5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestSampleWithoutReplacementDistinct(t *testing.T) {
	s := New(42)
	idx := s.SampleWithoutReplacement(500, 15)
	require.Len(t, idx, 15)
	seen := map[int]bool{}
	for _, i := range idx {
		assert.False(t, seen[i], "duplicate index %d", i)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 500)
		seen[i] = true
	}

	assert.Len(t, s.SampleWithoutReplacement(3, 10), 3)
	assert.Nil(t, s.SampleWithoutReplacement(3, 0))
}

func TestTimeline(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := Timeline(start, 3, time.Hour)
	require.Len(t, ts, 3)
	assert.Equal(t, start.Add(2*time.Hour), ts[2])
}
