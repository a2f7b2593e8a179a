package ports

import (
	"context"
	"math/rand"

	"multicomp/domain/study"
)

// ProcedurePort is a hypothesis-testing strategy evaluated once per trial.
// A trial generates fresh samples from its stream, applies the procedure's
// tests, and reports whether the null of equal means was rejected.
type ProcedurePort interface {
	Name() study.ProcedureName

	// RunTrial evaluates one independent trial. The stream is the trial's
	// private generator; implementations must not retain it.
	RunTrial(ctx context.Context, stream *rand.Rand, spec study.ScenarioSpec) (study.TrialOutcome, error)
}
