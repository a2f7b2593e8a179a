package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"multicomp/domain/core"
)

// ANOVAResult holds the outcome of a one-way analysis of variance
type ANOVAResult struct {
	F   float64 `json:"f"`
	DF1 int     `json:"df1"`
	DF2 int     `json:"df2"`
	P   float64 `json:"p"`
}

// OneWayANOVA tests the null hypothesis that all groups share a common mean
// with a single global F-test. Requires at least 2 groups and at least 2
// observations per group.
func OneWayANOVA(groups ...[]float64) (*ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, core.ErrTooFewGroups
	}

	total := 0
	grandSum := 0.0
	for _, g := range groups {
		if len(g) < 2 {
			return nil, core.NewInvalidArgumentError("group", "needs at least 2 observations")
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	// Between-group and within-group sums of squares.
	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range groups {
		n := float64(len(g))
		mean, variance := stat.MeanVariance(g, nil)
		ssBetween += n * (mean - grandMean) * (mean - grandMean)
		ssWithin += (n - 1) * variance
	}

	df1 := k - 1
	df2 := total - k

	if ssWithin == 0 {
		if ssBetween == 0 {
			return nil, core.NewDegenerateSampleError("zero variance within and between groups")
		}
		// Identical constants per group with differing means: certain rejection.
		return &ANOVAResult{F: math.Inf(1), DF1: df1, DF2: df2, P: 0}, nil
	}

	f := (ssBetween / float64(df1)) / (ssWithin / float64(df2))
	p := NewDistributions().FTestPValue(f, df1, df2)

	return &ANOVAResult{F: f, DF1: df1, DF2: df2, P: p}, nil
}
