package procedures

import (
	"context"
	"math/rand"

	"multicomp/adapters/stats"
	"multicomp/domain/study"
	"multicomp/internal/sampling"
	"multicomp/ports"
)

// ANOVA tests all groups simultaneously with a single one-way F-test, keeping
// the familywise false-positive rate at alpha regardless of group count.
type ANOVA struct{}

// NewANOVA creates the one-way ANOVA procedure
func NewANOVA() *ANOVA {
	return &ANOVA{}
}

var _ ports.ProcedurePort = (*ANOVA)(nil)

func (p *ANOVA) Name() study.ProcedureName {
	return study.ProcedureANOVA
}

// RunTrial generates fresh groups and applies one global test of equal means
func (p *ANOVA) RunTrial(ctx context.Context, stream *rand.Rand, spec study.ScenarioSpec) (study.TrialOutcome, error) {
	if err := spec.Validate(); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	sampler := sampling.NewNormalSampler(stream)
	groups, err := sampler.GenerateGroups(spec.Groups, spec.SampleSize)
	if err != nil {
		return false, err
	}

	result, err := stats.OneWayANOVA(groups.AsFloats()...)
	if err != nil {
		return false, err
	}
	return study.TrialOutcome(result.P < spec.Alpha), nil
}
