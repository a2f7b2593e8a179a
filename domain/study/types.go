package study

import (
	"math"

	"multicomp/domain/core"
)

// Sample is an ordered sequence of observations drawn i.i.d. from the
// reference population. Immutable once generated; its lifetime is one trial.
type Sample []float64

// Len returns the observation count
func (s Sample) Len() int {
	return len(s)
}

// GroupSet is an ordered collection of Samples, one per group.
// INVARIANT: under the null-calibration data-generating process every Sample
// comes from the same population, so any rejection is a false positive.
type GroupSet []Sample

// Groups returns the group count
func (g GroupSet) Groups() int {
	return len(g)
}

// AsFloats exposes the groups as plain float slices for the test statistics
func (g GroupSet) AsFloats() [][]float64 {
	out := make([][]float64, len(g))
	for i, s := range g {
		out[i] = s
	}
	return out
}

// TrialOutcome reports whether a testing procedure rejected the null
// hypothesis of equal group means in a single trial.
type TrialOutcome bool

// Rejected returns true when the procedure declared a positive
func (o TrialOutcome) Rejected() bool {
	return bool(o)
}

// ProcedureName identifies a hypothesis-testing strategy
type ProcedureName string

const (
	ProcedureAllPairs ProcedureName = "all_pairs"
	ProcedureANOVA    ProcedureName = "anova"
)

// TTestKind selects the two-sample test used for pairwise comparisons
type TTestKind string

const (
	TTestStudent TTestKind = "student" // pooled variance
	TTestWelch   TTestKind = "welch"   // unequal variance
)

// ScenarioSpec defines one simulation scenario: a procedure evaluated over
// repeated trials against samples drawn from a single population.
type ScenarioSpec struct {
	Name       string        `json:"name" yaml:"name"`
	Procedure  ProcedureName `json:"procedure" yaml:"procedure"`
	Groups     int           `json:"groups" yaml:"groups"`
	SampleSize int           `json:"sample_size" yaml:"sample_size,omitempty"`
	Alpha      float64       `json:"alpha" yaml:"alpha,omitempty"`
	Bonferroni bool          `json:"bonferroni,omitempty" yaml:"bonferroni,omitempty"`
	TTest      TTestKind     `json:"t_test,omitempty" yaml:"t_test,omitempty"`
	Trials     int           `json:"trials" yaml:"trials,omitempty"`
	Seed       int64         `json:"seed" yaml:"seed,omitempty"`
	Workers    int           `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Validate checks the scenario against the domain invariants.
// All violations map to the ErrInvalidArgument family.
func (s ScenarioSpec) Validate() error {
	if s.Groups < 2 {
		return core.ErrTooFewGroups
	}
	if s.SampleSize <= 0 {
		return core.ErrBadSampleSize
	}
	if s.Alpha <= 0 || s.Alpha > 1 {
		return core.ErrBadAlpha
	}
	if s.Trials <= 0 {
		return core.ErrNoTrials
	}
	switch s.Procedure {
	case ProcedureAllPairs, ProcedureANOVA:
	default:
		return core.NewInvalidArgumentError("procedure", "must be all_pairs or anova")
	}
	return nil
}

// EffectiveAlpha returns the per-test threshold after the optional Bonferroni
// correction. The correction is a parameterization of the pairwise procedure,
/// not separate logic: alpha is pre-divided by the number of pairwise tests.
func (s ScenarioSpec) EffectiveAlpha() float64 {
	if s.Bonferroni && s.Procedure == ProcedureAllPairs {
		return BonferroniAlpha(s.Alpha, s.Groups)
	}
	return s.Alpha
}

// TheoreticalRate returns the expected false-positive rate for the scenario
// under independence assumptions: alpha for ANOVA, the familywise rate
// 1-(1-alpha)^C(k,2) for uncorrected all-pairs testing.
func (s ScenarioSpec) TheoreticalRate() float64 {
	if s.Procedure == ProcedureAllPairs {
		return TheoreticalFamilywiseRate(s.EffectiveAlpha(), s.Groups)
	}
	return s.Alpha
}

// PairCount returns C(k, 2), the number of unordered group pairs
func PairCount(k int) int {
	if k < 2 {
		return 0
	}
	return k * (k - 1) / 2
}

// BonferroniAlpha divides the familywise threshold across all pairwise tests
func BonferroniAlpha(alpha float64, groups int) float64 {
	pairs := PairCount(groups)
	if pairs == 0 {
		return alpha
	}
	return alpha / float64(pairs)
}

// TheoreticalFamilywiseRate returns 1-(1-alpha)^C(k,2): the probability that
// at least one of C(k,2) independent tests at level alpha rejects.
func TheoreticalFamilywiseRate(alpha float64, groups int) float64 {
	return 1 - math.Pow(1-alpha, float64(PairCount(groups)))
}

// AggregateResult is the outcome of running a scenario: how many trials
// rejected the null and the derived empirical false-positive rate.
type AggregateResult struct {
	Scenario        ScenarioSpec   `json:"scenario"`
	Positives       int            `json:"positives"`
	Trials          int            `json:"trials"`
	EmpiricalRate   float64        `json:"empirical_rate"`
	TheoreticalRate float64        `json:"theoretical_rate"`
	StdError        float64        `json:"std_error"`
	RuntimeMs       int64          `json:"runtime_ms"`
	ComputedAt      core.Timestamp `json:"computed_at"`
}

// NewAggregateResult derives the empirical rate and its binomial standard
// error from a positive count. Trials must already be validated positive.
func NewAggregateResult(spec ScenarioSpec, positives int) AggregateResult {
	n := float64(spec.Trials)
	rate := float64(positives) / n
	return AggregateResult{
		Scenario:        spec,
		Positives:       positives,
		Trials:          spec.Trials,
		EmpiricalRate:   rate,
		TheoreticalRate: spec.TheoreticalRate(),
		StdError:        math.Sqrt(rate * (1 - rate) / n),
		ComputedAt:      core.Now(),
	}
}

// GroupMoments holds descriptive statistics for one generated group, used by
// the sampling audit to show all groups share a population.
type GroupMoments struct {
	Group  int     `json:"group"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// StudyReport is the complete output of a study run
type StudyReport struct {
	StudyID   core.StudyID      `json:"study_id"`
	Seed      int64             `json:"seed"`
	Results   []AggregateResult `json:"results"`
	Audit     []GroupMoments    `json:"sampling_audit,omitempty"`
	CreatedAt core.Timestamp    `json:"created_at"`
}
