package sampling

import (
	"math/rand"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"multicomp/domain/core"
	"multicomp/domain/study"
)

// NormalSampler draws i.i.d. observations from the standard normal reference
// population. The generator is injected rather than process-global so each
// trial (or worker) owns an independent, reproducible stream.
type NormalSampler struct {
	dist distuv.Normal
}

// NewNormalSampler creates a sampler backed by the given stream.
// *rand.Rand satisfies the distuv source contract via its Uint64 method.
func NewNormalSampler(stream *rand.Rand) *NormalSampler {
	return &NormalSampler{
		dist: distuv.Normal{Mu: 0, Sigma: 1, Src: stream},
	}
}

// Generate draws one Sample of the given size
func (s *NormalSampler) Generate(size int) (study.Sample, error) {
	if size <= 0 {
		return nil, core.ErrBadSampleSize
	}

	sample := make(study.Sample, size)
	for i := range sample {
		sample[i] = s.dist.Rand()
	}
	return sample, nil
}

// GenerateGroups draws a GroupSet of independent Samples from the same
// population. Every group shares the reference distribution, so a rejection
// downstream is a false positive by construction.
func (s *NormalSampler) GenerateGroups(groups, size int) (study.GroupSet, error) {
	if groups < 2 {
		return nil, core.ErrTooFewGroups
	}

	set := make(study.GroupSet, groups)
	for i := range set {
		sample, err := s.Generate(size)
		if err != nil {
			return nil, err
		}
		set[i] = sample
	}
	return set, nil
}

// Describe computes descriptive moments for one group, used by the sampling
// audit to show the groups are exchangeable.
func Describe(group int, sample study.Sample) (study.GroupMoments, error) {
	data := stats.Float64Data(sample)

	mean, err := data.Mean()
	if err != nil {
		return study.GroupMoments{}, err
	}
	sd, err := data.StandardDeviationSample()
	if err != nil {
		return study.GroupMoments{}, err
	}
	min, err := data.Min()
	if err != nil {
		return study.GroupMoments{}, err
	}
	max, err := data.Max()
	if err != nil {
		return study.GroupMoments{}, err
	}
	median, err := data.Median()
	if err != nil {
		return study.GroupMoments{}, err
	}

	return study.GroupMoments{
		Group:  group,
		N:      sample.Len(),
		Mean:   mean,
		StdDev: sd,
		Min:    min,
		Max:    max,
		Median: median,
	}, nil
}
