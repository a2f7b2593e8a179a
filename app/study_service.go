package app

import (
	"context"
	"fmt"

	"multicomp/domain/core"
	"multicomp/domain/study"
	"multicomp/internal/procedures"
	"multicomp/internal/sampling"
	"multicomp/internal/trials"
	"multicomp/ports"
)

// StudyService orchestrates a multiple-comparisons study: it validates
// scenarios, resolves procedures, and aggregates trial outcomes into a report.
type StudyService struct {
	aggregator *trials.Aggregator
	rngPort    ports.RNGPort
}

// StudyRequest defines the inputs for one deterministic study run
type StudyRequest struct {
	Scenarios []study.ScenarioSpec
	StudyID   core.StudyID // optional, generated when empty
	Audit     bool         // include the sampling audit in the report
}

// NewStudyService creates a study service
func NewStudyService(rngPort ports.RNGPort) *StudyService {
	return &StudyService{
		aggregator: trials.NewAggregator(rngPort),
		rngPort:    rngPort,
	}
}

// RunStudy executes every scenario and assembles the study report.
// Scenario failures abort the study; there are no partial reports.
func (s *StudyService) RunStudy(ctx context.Context, req StudyRequest) (*study.StudyReport, error) {
	if len(req.Scenarios) == 0 {
		return nil, core.NewInvalidArgumentError("scenarios", "must not be empty")
	}

	studyID := req.StudyID
	if studyID == "" {
		studyID = core.StudyID(core.NewID())
	}

	report := &study.StudyReport{
		StudyID:   studyID,
		Seed:      req.Scenarios[0].Seed,
		CreatedAt: core.Now(),
	}

	for _, spec := range req.Scenarios {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}

		proc, err := procedures.Resolve(spec.Procedure)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}

		result, err := s.aggregator.Run(ctx, proc, spec)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}
		report.Results = append(report.Results, *result)
	}

	if req.Audit {
		audit, err := s.samplingAudit(ctx, req.Scenarios[0])
		if err != nil {
			return nil, fmt.Errorf("sampling audit: %w", err)
		}
		report.Audit = audit
	}

	return report, nil
}

// samplingAudit draws one group set under the first scenario's parameters and
// describes each group, making the shared-population invariant visible.
func (s *StudyService) samplingAudit(ctx context.Context, spec study.ScenarioSpec) ([]study.GroupMoments, error) {
	stream, err := s.rngPort.SeededStream(ctx, "sampling-audit", spec.Seed)
	if err != nil {
		return nil, err
	}

	sampler := sampling.NewNormalSampler(stream)
	groups, err := sampler.GenerateGroups(spec.Groups, spec.SampleSize)
	if err != nil {
		return nil, err
	}

	audit := make([]study.GroupMoments, 0, groups.Groups())
	for i, g := range groups {
		moments, err := sampling.Describe(i, g)
		if err != nil {
			return nil, err
		}
		audit = append(audit, moments)
	}
	return audit, nil
}

// DefaultScenarios reproduces the reference demonstration: pairwise testing
// at 2, 3, and 20 groups, the Bonferroni-corrected variant, and the ANOVA
// remedy, each over 1000 trials of 100-observation samples.
func DefaultScenarios(seed int64, trialCount, workers int) []study.ScenarioSpec {
	base := study.ScenarioSpec{
		SampleSize: 100,
		Alpha:      0.05,
		Trials:     trialCount,
		Seed:       seed,
		Workers:    workers,
	}

	pairwise := func(name string, groups int, bonferroni bool) study.ScenarioSpec {
		s := base
		s.Name = name
		s.Procedure = study.ProcedureAllPairs
		s.Groups = groups
		s.Bonferroni = bonferroni
		return s
	}

	anova := base
	anova.Name = "anova-3-groups"
	anova.Procedure = study.ProcedureANOVA
	anova.Groups = 3

	return []study.ScenarioSpec{
		pairwise("pairwise-2-groups", 2, false),
		pairwise("pairwise-3-groups", 3, false),
		pairwise("pairwise-20-groups", 20, false),
		pairwise("pairwise-3-groups-bonferroni", 3, true),
		anova,
	}
}
