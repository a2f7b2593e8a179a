package procedures

import (
	"context"
	"math/rand"

	"multicomp/adapters/stats"
	"multicomp/domain/study"
	"multicomp/internal/sampling"
	"multicomp/ports"
)

// AllPairs tests every unordered pair of groups with a two-sample t-test and
// declares a positive when any pair's p-value falls below the effective
// threshold. With all groups drawn from one population this exhibits the
// multiple-comparisons inflation the study demonstrates.
type AllPairs struct{}

// NewAllPairs creates the pairwise multiple-testing procedure
func NewAllPairs() *AllPairs {
	return &AllPairs{}
}

var _ ports.ProcedurePort = (*AllPairs)(nil)

func (p *AllPairs) Name() study.ProcedureName {
	return study.ProcedureAllPairs
}

// RunTrial generates fresh groups and ORs the per-pair significance
// indicators. Enumeration short-circuits on the first significant pair; the
// result is equivalent to evaluating all pairs.
func (p *AllPairs) RunTrial(ctx context.Context, stream *rand.Rand, spec study.ScenarioSpec) (study.TrialOutcome, error) {
	if err := spec.Validate(); err != nil {
		return false, err
	}

	sampler := sampling.NewNormalSampler(stream)
	groups, err := sampler.GenerateGroups(spec.Groups, spec.SampleSize)
	if err != nil {
		return false, err
	}

	alpha := spec.EffectiveAlpha()
	test := testFor(spec.TTest)

	for i := 0; i < groups.Groups(); i++ {
		for j := i + 1; j < groups.Groups(); j++ {
			if err := ctx.Err(); err != nil {
				return false, err
			}

			result, err := test(groups[i], groups[j])
			if err != nil {
				return false, err
			}
			if result.P < alpha {
				return true, nil
			}
		}
	}
	return false, nil
}

func testFor(kind study.TTestKind) func(x, y []float64) (*stats.TTestResult, error) {
	if kind == study.TTestWelch {
		return stats.TwoSampleWelchTTest
	}
	return stats.TwoSampleTTest
}
