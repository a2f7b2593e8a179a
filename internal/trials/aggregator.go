package trials

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"multicomp/domain/study"
	"multicomp/ports"
)

// Aggregator repeats a procedure over independent trials and counts
// rejections. Each trial draws its generator from the RNG port keyed by
// (scenario, trial, seed), so results are identical for any worker count
// and reproducible across runs under a fixed seed.
type Aggregator struct {
	rngPort ports.RNGPort
}

// NewAggregator creates a trial aggregator
func NewAggregator(rngPort ports.RNGPort) *Aggregator {
	return &Aggregator{rngPort: rngPort}
}

// Run executes the scenario's trials and aggregates the outcomes.
// The first trial error aborts the run with no partial result; the
// demonstration has no transient-failure sources, so there are no retries.
func (a *Aggregator) Run(ctx context.Context, proc ports.ProcedurePort, spec study.ScenarioSpec) (*study.AggregateResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	var positives int
	var err error
	if spec.Workers > 1 {
		positives, err = a.runParallel(ctx, proc, spec)
	} else {
		positives, err = a.runSequential(ctx, proc, spec)
	}
	if err != nil {
		return nil, err
	}

	result := study.NewAggregateResult(spec, positives)
	result.RuntimeMs = time.Since(start).Milliseconds()
	return &result, nil
}

func (a *Aggregator) runSequential(ctx context.Context, proc ports.ProcedurePort, spec study.ScenarioSpec) (int, error) {
	positives := 0
	for trial := 0; trial < spec.Trials; trial++ {
		stream, err := a.rngPort.TrialStream(ctx, spec.Name, trial, spec.Seed)
		if err != nil {
			return 0, err
		}

		outcome, err := proc.RunTrial(ctx, stream, spec)
		if err != nil {
			return 0, err
		}
		if outcome.Rejected() {
			positives++
		}
	}
	return positives, nil
}

func (a *Aggregator) runParallel(ctx context.Context, proc ports.ProcedurePort, spec study.ScenarioSpec) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(spec.Workers)

	// Counting is commutative, so no ordering between trials is needed.
	var positives atomic.Int64
	for trial := 0; trial < spec.Trials; trial++ {
		g.Go(func() error {
			stream, err := a.rngPort.TrialStream(ctx, spec.Name, trial, spec.Seed)
			if err != nil {
				return err
			}

			outcome, err := proc.RunTrial(ctx, stream, spec)
			if err != nil {
				return err
			}
			if outcome.Rejected() {
				positives.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(positives.Load()), nil
}
