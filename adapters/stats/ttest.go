package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"multicomp/domain/core"
)

// TTestResult holds the outcome of a two-sample location test
type TTestResult struct {
	T   float64 `json:"t"`
	DoF float64 `json:"dof"`
	P   float64 `json:"p"`
}

// TwoSampleTTest performs the pooled-variance Student's t-test of the null
// hypothesis that x and y come from populations with equal means.
func TwoSampleTTest(x, y []float64) (*TTestResult, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, core.NewInvalidArgumentError("sample", "needs at least 2 observations per group")
	}

	n1, n2 := float64(len(x)), float64(len(y))
	mean1, var1 := stat.MeanVariance(x, nil)
	mean2, var2 := stat.MeanVariance(y, nil)

	dof := n1 + n2 - 2
	pooledVar := ((n1-1)*var1 + (n2-1)*var2) / dof

	if pooledVar == 0 {
		if mean1 == mean2 {
			return nil, core.NewDegenerateSampleError("zero variance in both groups with equal means")
		}
		// Distinct constants: the difference is certain.
		return &TTestResult{T: math.Inf(sign(mean1 - mean2)), DoF: dof, P: 0}, nil
	}

	t := (mean1 - mean2) / math.Sqrt(pooledVar*(1/n1+1/n2))
	p := NewDistributions().TTestPValue(t, dof)

	return &TTestResult{T: t, DoF: dof, P: p}, nil
}

// TwoSampleWelchTTest performs Welch's t-test, which does not assume equal
// population variances. Degrees of freedom follow the Welch-Satterthwaite
// equation.
func TwoSampleWelchTTest(x, y []float64) (*TTestResult, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, core.NewInvalidArgumentError("sample", "needs at least 2 observations per group")
	}

	n1, n2 := float64(len(x)), float64(len(y))
	mean1, var1 := stat.MeanVariance(x, nil)
	mean2, var2 := stat.MeanVariance(y, nil)

	se2 := var1/n1 + var2/n2
	if se2 == 0 {
		if mean1 == mean2 {
			return nil, core.NewDegenerateSampleError("zero variance in both groups with equal means")
		}
		return &TTestResult{T: math.Inf(sign(mean1 - mean2)), DoF: n1 + n2 - 2, P: 0}, nil
	}

	t := (mean1 - mean2) / math.Sqrt(se2)
	dof := se2 * se2 / (var1*var1/(n1*n1*(n1-1)) + var2*var2/(n2*n2*(n2-1)))
	p := NewDistributions().TTestPValue(t, dof)

	return &TTestResult{T: t, DoF: dof, P: p}, nil
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
