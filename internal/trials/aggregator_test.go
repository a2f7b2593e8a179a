package trials

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"multicomp/adapters/rng"
	"multicomp/domain/core"
	"multicomp/domain/study"
	"multicomp/internal/procedures"
	"multicomp/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(proc study.ProcedureName, groups, trialCount int) study.ScenarioSpec {
	return study.ScenarioSpec{
		Name:       "calibration",
		Procedure:  proc,
		Groups:     groups,
		SampleSize: 100,
		Alpha:      0.05,
		Trials:     trialCount,
		Seed:       5000,
	}
}

func runScenario(t *testing.T, spec study.ScenarioSpec) *study.AggregateResult {
	t.Helper()
	agg := NewAggregator(rng.New())
	proc, err := procedures.Resolve(spec.Procedure)
	require.NoError(t, err)

	result, err := agg.Run(context.Background(), proc, spec)
	require.NoError(t, err)
	return result
}

func TestRun_InvalidArguments(t *testing.T) {
	agg := NewAggregator(rng.New())
	proc := procedures.NewAllPairs()
	ctx := context.Background()

	t.Run("zero trials", func(t *testing.T) {
		spec := scenario(study.ProcedureAllPairs, 3, 0)
		_, err := agg.Run(ctx, proc, spec)
		require.ErrorIs(t, err, core.ErrNoTrials)
	})

	t.Run("bad alpha", func(t *testing.T) {
		spec := scenario(study.ProcedureAllPairs, 3, 100)
		spec.Alpha = 1.5
		_, err := agg.Run(ctx, proc, spec)
		require.ErrorIs(t, err, core.ErrBadAlpha)
	})

	t.Run("too few groups", func(t *testing.T) {
		spec := scenario(study.ProcedureAllPairs, 1, 100)
		_, err := agg.Run(ctx, proc, spec)
		require.ErrorIs(t, err, core.ErrTooFewGroups)
	})
}

func TestRun_SeedDeterminism(t *testing.T) {
	spec := scenario(study.ProcedureAllPairs, 3, 200)

	a := runScenario(t, spec)
	b := runScenario(t, spec)

	assert.Equal(t, a.Positives, b.Positives)
	assert.Equal(t, a.EmpiricalRate, b.EmpiricalRate)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	// Per-trial streams make the aggregate independent of the worker count.
	seq := scenario(study.ProcedureANOVA, 3, 300)
	par := seq
	par.Workers = 4

	a := runScenario(t, seq)
	b := runScenario(t, par)

	assert.Equal(t, a.Positives, b.Positives)
}

func TestRun_ANOVACalibration(t *testing.T) {
	// A single global test keeps the false-positive rate at alpha. With 2000
	// trials the binomial standard error is ~0.005; the window below is over
	// five standard errors wide on each side.
	spec := scenario(study.ProcedureANOVA, 3, 2000)

	result := runScenario(t, spec)

	assert.Greater(t, result.EmpiricalRate, 0.02)
	assert.Less(t, result.EmpiricalRate, 0.08)
	assert.InDelta(t, 0.05, result.TheoreticalRate, 1e-12)
}

func TestRun_AllPairsInflation(t *testing.T) {
	// Three groups mean three pairwise chances to reject, so the familywise
	// rate lands near 1-(1-.05)^3 ~= 0.14, well above alpha. The pair tests
	// share groups, so the empirical rate sits slightly below independence;
	// the window accounts for both the dependence and sampling error.
	spec := scenario(study.ProcedureAllPairs, 3, 2000)

	result := runScenario(t, spec)

	assert.Greater(t, result.EmpiricalRate, 0.09)
	assert.Less(t, result.EmpiricalRate, 0.19)
}

func TestRun_MonotoneInGroupCount(t *testing.T) {
	// More pairs mean more chances to reject: the empirical rate is
	// non-decreasing from 2 to 20 groups.
	var previous float64 = -1
	for _, k := range []int{2, 3, 20} {
		spec := scenario(study.ProcedureAllPairs, k, 500)
		result := runScenario(t, spec)
		assert.GreaterOrEqual(t, result.EmpiricalRate, previous, "groups=%d", k)
		previous = result.EmpiricalRate
	}

	// Twenty groups drive the familywise rate toward certainty.
	assert.Greater(t, previous, 0.85)
}

func TestRun_BonferroniRestoresCalibration(t *testing.T) {
	uncorrected := scenario(study.ProcedureAllPairs, 3, 2000)
	corrected := uncorrected
	corrected.Name = "bonferroni"
	corrected.Bonferroni = true

	u := runScenario(t, uncorrected)
	c := runScenario(t, corrected)

	// The corrected rate returns to the neighborhood of alpha and is
	// strictly closer to it than the inflated uncorrected rate.
	assert.Greater(t, c.EmpiricalRate, 0.01)
	assert.Less(t, c.EmpiricalRate, 0.08)
	assert.Less(t, math.Abs(c.EmpiricalRate-0.05), math.Abs(u.EmpiricalRate-0.05))
}

func TestRun_BaselineTwoGroups(t *testing.T) {
	// With two groups there is a single test; the rate stays near alpha.
	spec := scenario(study.ProcedureAllPairs, 2, 2000)

	result := runScenario(t, spec)

	assert.Greater(t, result.EmpiricalRate, 0.025)
	assert.Less(t, result.EmpiricalRate, 0.08)
	assert.InDelta(t, 0.05, result.TheoreticalRate, 1e-12)
}

// failingProcedure errors on every trial to exercise abort-on-first-failure.
type failingProcedure struct{}

func (failingProcedure) Name() study.ProcedureName { return "failing" }

func (failingProcedure) RunTrial(ctx context.Context, stream *rand.Rand, spec study.ScenarioSpec) (study.TrialOutcome, error) {
	return false, errors.New("statistic undefined")
}

var _ ports.ProcedurePort = failingProcedure{}

func TestRun_FirstFailureAborts(t *testing.T) {
	agg := NewAggregator(rng.New())
	spec := scenario(study.ProcedureAllPairs, 3, 100)

	_, err := agg.Run(context.Background(), failingProcedure{}, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistic undefined")
}
