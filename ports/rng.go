package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic simulation
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates a deterministic RNG stream for a specific scenario trial.
	// Each trial owns an independent stream so the aggregator can fan trials out
	// across workers without changing results. The derivation depends only on
	// the scenario name, trial index, and base seed, so a fixed seed reproduces
	// identical samples and outcomes across runs.
	TrialStream(ctx context.Context, scenarioName string, trial int, baseSeed int64) (*rand.Rand, error)
}
