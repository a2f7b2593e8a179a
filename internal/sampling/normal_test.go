package sampling

import (
	"math"
	"math/rand"
	"testing"

	"multicomp/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SeedDeterminism(t *testing.T) {
	a := NewNormalSampler(rand.New(rand.NewSource(5000)))
	b := NewNormalSampler(rand.New(rand.NewSource(5000)))

	sa, err := a.Generate(100)
	require.NoError(t, err)
	sb, err := b.Generate(100)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
}

func TestGenerate_InvalidSize(t *testing.T) {
	s := NewNormalSampler(rand.New(rand.NewSource(1)))

	for _, size := range []int{0, -5} {
		_, err := s.Generate(size)
		require.ErrorIs(t, err, core.ErrBadSampleSize, "size=%d", size)
	}
}

func TestGenerateGroups(t *testing.T) {
	s := NewNormalSampler(rand.New(rand.NewSource(42)))

	set, err := s.GenerateGroups(3, 50)
	require.NoError(t, err)
	require.Equal(t, 3, set.Groups())
	for i, g := range set {
		assert.Equal(t, 50, g.Len(), "group %d", i)
	}

	// Groups are independent draws, not copies.
	assert.NotEqual(t, set[0], set[1])
}

func TestGenerateGroups_TooFewGroups(t *testing.T) {
	s := NewNormalSampler(rand.New(rand.NewSource(42)))

	_, err := s.GenerateGroups(1, 50)
	require.ErrorIs(t, err, core.ErrTooFewGroups)
}

func TestGenerate_PopulationMoments(t *testing.T) {
	// A large sample from N(0,1) should have mean near 0 and sd near 1.
	s := NewNormalSampler(rand.New(rand.NewSource(7)))

	sample, err := s.Generate(100000)
	require.NoError(t, err)

	m, err := Describe(0, sample)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, m.Mean, 0.02)
	assert.InDelta(t, 1.0, m.StdDev, 0.02)
	assert.True(t, m.Min < m.Median && m.Median < m.Max)
	assert.False(t, math.IsNaN(m.Median))
}
