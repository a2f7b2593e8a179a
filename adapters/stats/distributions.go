package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the sampling distributions used by
// the test statistics, replacing ad-hoc CDF approximations with exact values.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TTestPValue computes the two-tailed p-value for a t-statistic using
// Student's t-distribution. Non-integer degrees of freedom are supported
// (Welch-Satterthwaite).
func (d *Distributions) TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return 2 * tDist.CDF(-math.Abs(tStatistic))
}

// FTestPValue computes the upper-tail p-value for an F-statistic
func (d *Distributions) FTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - fDist.CDF(fStatistic)
}

// NormalCDF computes the cumulative distribution function of the standard normal
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal quantile (inverse CDF)
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
