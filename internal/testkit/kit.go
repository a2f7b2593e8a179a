package testkit

import (
	"math/rand"

	"multicomp/domain/study"
	"multicomp/internal/sampling"
)

// TestKit provides deterministic fixtures for the simulation packages
type TestKit struct {
	seed int64
}

// NewTestKit creates a kit with a fixed base seed
func NewTestKit(seed int64) *TestKit {
	return &TestKit{seed: seed}
}

// Stream returns a fresh generator at the kit's seed plus an offset, so a
// test can hold several independent reproducible streams.
func (k *TestKit) Stream(offset int64) *rand.Rand {
	return rand.New(rand.NewSource(k.seed + offset))
}

// NullGroups draws a GroupSet where every group shares the N(0,1) population
func (k *TestKit) NullGroups(groups, size int) (study.GroupSet, error) {
	sampler := sampling.NewNormalSampler(k.Stream(0))
	return sampler.GenerateGroups(groups, size)
}

// ShiftedGroups draws null groups and shifts the last group's mean, giving
// tests a set where the null is genuinely false.
func (k *TestKit) ShiftedGroups(groups, size int, shift float64) (study.GroupSet, error) {
	set, err := k.NullGroups(groups, size)
	if err != nil {
		return nil, err
	}

	last := set[len(set)-1]
	shifted := make(study.Sample, len(last))
	for i, v := range last {
		shifted[i] = v + shift
	}
	set[len(set)-1] = shifted
	return set, nil
}

// DegenerateSample returns a zero-variance sample that makes test statistics
// undefined.
func DegenerateSample(size int, value float64) study.Sample {
	s := make(study.Sample, size)
	for i := range s {
		s[i] = value
	}
	return s
}

// BaselineScenario is the reference demonstration scenario with a small trial
// count suitable for unit tests.
func BaselineScenario() study.ScenarioSpec {
	return study.ScenarioSpec{
		Name:       "baseline",
		Procedure:  study.ProcedureAllPairs,
		Groups:     3,
		SampleSize: 100,
		Alpha:      0.05,
		Trials:     100,
		Seed:       5000,
	}
}
