package stats

import (
	"math"
	"testing"

	"multicomp/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoSampleTTest_KnownValues(t *testing.T) {
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	r, err := TwoSampleTTest(s1, s2)
	require.NoError(t, err)
	assert.InDelta(t, -3.9703446152237674, r.T, 1e-9)
	assert.InDelta(t, 6, r.DoF, 1e-12)
	assert.InDelta(t, 0.0073640592242113214, r.P, 1e-9)
}

func TestTwoSampleTTest_IdenticalSamples(t *testing.T) {
	s := []float64{2, 1, 3, 4}

	r, err := TwoSampleTTest(s, s)
	require.NoError(t, err)
	assert.Zero(t, r.T)
	assert.InDelta(t, 1.0, r.P, 1e-12)
}

func TestTwoSampleWelchTTest_KnownValues(t *testing.T) {
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	r, err := TwoSampleWelchTTest(s1, s2)
	require.NoError(t, err)
	assert.InDelta(t, -3.9703446152237674, r.T, 1e-9)
	assert.InDelta(t, 5.584615384615385, r.DoF, 1e-9)
	assert.InDelta(t, 0.0085128631313781695, r.P, 1e-9)
}

func TestTwoSampleTTest_Degenerate(t *testing.T) {
	t.Run("zero variance equal means", func(t *testing.T) {
		_, err := TwoSampleTTest([]float64{1, 1, 1}, []float64{1, 1, 1})
		require.Error(t, err)
		assert.True(t, core.IsDegenerateSample(err))
	})

	t.Run("zero variance distinct means", func(t *testing.T) {
		r, err := TwoSampleTTest([]float64{1, 1, 1}, []float64{2, 2, 2})
		require.NoError(t, err)
		assert.True(t, math.IsInf(r.T, -1))
		assert.Zero(t, r.P)
	})

	t.Run("too few observations", func(t *testing.T) {
		_, err := TwoSampleTTest([]float64{1}, []float64{2, 3})
		assert.True(t, core.IsInvalidArgument(err))
	})
}

func TestOneWayANOVA_KnownValues(t *testing.T) {
	// Group means 2, 3, 4; grand mean 3. SSB = 6 (df 2), SSW = 6 (df 6),
	// F = 3. With d1 = 2 the survival function is closed form:
	// P(F > f) = (1 + 2f/d2)^(-d2/2) = 2^-3 = 0.125.
	g1 := []float64{1, 2, 3}
	g2 := []float64{2, 3, 4}
	g3 := []float64{3, 4, 5}

	r, err := OneWayANOVA(g1, g2, g3)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, r.F, 1e-12)
	assert.Equal(t, 2, r.DF1)
	assert.Equal(t, 6, r.DF2)
	assert.InDelta(t, 0.125, r.P, 1e-9)
}

func TestOneWayANOVA_EqualGroups(t *testing.T) {
	g := []float64{1, 2, 3, 4}

	r, err := OneWayANOVA(g, g, g)
	require.NoError(t, err)
	assert.Zero(t, r.F)
	assert.InDelta(t, 1.0, r.P, 1e-12)
}

func TestOneWayANOVA_MatchesTTestForTwoGroups(t *testing.T) {
	// With two groups, F = t^2 and the p-values coincide.
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	tt, err := TwoSampleTTest(s1, s2)
	require.NoError(t, err)
	av, err := OneWayANOVA(s1, s2)
	require.NoError(t, err)

	assert.InDelta(t, tt.T*tt.T, av.F, 1e-9)
	assert.InDelta(t, tt.P, av.P, 1e-9)
}

func TestOneWayANOVA_InvalidInput(t *testing.T) {
	t.Run("single group", func(t *testing.T) {
		_, err := OneWayANOVA([]float64{1, 2, 3})
		require.ErrorIs(t, err, core.ErrTooFewGroups)
	})

	t.Run("no groups", func(t *testing.T) {
		_, err := OneWayANOVA()
		require.ErrorIs(t, err, core.ErrTooFewGroups)
	})

	t.Run("degenerate groups", func(t *testing.T) {
		_, err := OneWayANOVA([]float64{1, 1}, []float64{1, 1})
		assert.True(t, core.IsDegenerateSample(err))
	})
}

func TestDistributions(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 0.5, d.NormalCDF(0), 1e-12)
	assert.InDelta(t, 1.959963985, d.NormalQuantile(0.975), 1e-6)
	// Invalid degrees of freedom degrade to p = 1, never a crash.
	assert.Equal(t, 1.0, d.TTestPValue(2.5, 0))
	assert.Equal(t, 1.0, d.FTestPValue(3.0, 0, 6))
}
