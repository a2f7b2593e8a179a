package rng

import (
	"context"
	"hash/fnv"
	"math/rand"

	"multicomp/ports"
)

// DeterministicRNG implements ports.RNGPort with reproducible streams.
// Derived streams hash their identity into the base seed so that a given
// (scenario, trial) pair always yields the same generator, independent of
// scheduling order and of anything randomly generated at runtime.
type DeterministicRNG struct{}

// New creates a deterministic RNG adapter
func New() *DeterministicRNG {
	return &DeterministicRNG{}
}

var _ ports.RNGPort = (*DeterministicRNG)(nil)

// SeededStream creates a deterministic random number generator for a named operation
func (r *DeterministicRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// TrialStream creates a deterministic RNG stream for a specific scenario trial
func (r *DeterministicRNG) TrialStream(ctx context.Context, scenarioName string, trial int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if scenarioName != "" {
		seed = int64(hashString(scenarioName)) + seed
	}
	seed += int64(trial) * 0x9e3779b9
	return rand.New(rand.NewSource(seed)), nil
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
