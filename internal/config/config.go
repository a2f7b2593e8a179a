package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"multicomp/domain/study"
)

// Defaults matching the reference demonstration
const (
	DefaultSeed       = int64(5000)
	DefaultTrials     = 1000
	DefaultSampleSize = 100
	DefaultAlpha      = 0.05
	DefaultWorkers    = 1
)

// Environment variable overrides
const (
	EnvSeed    = "MULTICOMP_SEED"
	EnvTrials  = "MULTICOMP_TRIALS"
	EnvWorkers = "MULTICOMP_WORKERS"
)

// StudyConfig is the YAML study file: shared defaults plus a scenario list
type StudyConfig struct {
	Defaults  ScenarioDefaults     `yaml:"defaults"`
	Scenarios []study.ScenarioSpec `yaml:"scenarios"`
}

// ScenarioDefaults fill in fields a scenario leaves unset
type ScenarioDefaults struct {
	SampleSize int     `yaml:"sample_size"`
	Alpha      float64 `yaml:"alpha"`
	Trials     int     `yaml:"trials"`
	Seed       int64   `yaml:"seed"`
	Workers    int     `yaml:"workers"`
}

// DefaultStudyConfig returns the demonstration defaults
func DefaultStudyConfig() *StudyConfig {
	return &StudyConfig{
		Defaults: ScenarioDefaults{
			SampleSize: DefaultSampleSize,
			Alpha:      DefaultAlpha,
			Trials:     DefaultTrials,
			Seed:       DefaultSeed,
			Workers:    DefaultWorkers,
		},
	}
}

// scenarioEntry mirrors study.ScenarioSpec with pointer fields so that an
// absent key and an explicit zero are distinguishable. An explicit "seed: 0"
// keeps the zero; only missing keys take the defaults-block value.
type scenarioEntry struct {
	Name       string              `yaml:"name"`
	Procedure  study.ProcedureName `yaml:"procedure"`
	Groups     int                 `yaml:"groups"`
	SampleSize *int                `yaml:"sample_size"`
	Alpha      *float64            `yaml:"alpha"`
	Bonferroni bool                `yaml:"bonferroni"`
	TTest      study.TTestKind     `yaml:"t_test"`
	Trials     *int                `yaml:"trials"`
	Seed       *int64              `yaml:"seed"`
	Workers    *int                `yaml:"workers"`
}

// Load reads a study file, applies defaults and environment overrides, and
// validates every scenario.
func Load(path string) (*StudyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read study config: %w", err)
	}

	cfg := DefaultStudyConfig()
	file := struct {
		Defaults  *ScenarioDefaults `yaml:"defaults"`
		Scenarios []scenarioEntry   `yaml:"scenarios"`
	}{Defaults: &cfg.Defaults}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse study config: %w", err)
	}

	cfg.applyEnv()
	cfg.Scenarios = resolveScenarios(file.Scenarios, cfg.Defaults)

	for i, s := range cfg.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, s.Name, err)
		}
	}
	return cfg, nil
}

// applyEnv lets the environment override the file-level defaults.
// Values are read from the process environment; cmd loads .env via godotenv.
func (c *StudyConfig) applyEnv() {
	if v := os.Getenv(EnvSeed); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Defaults.Seed = seed
		}
	}
	if v := os.Getenv(EnvTrials); v != "" {
		if trials, err := strconv.Atoi(v); err == nil {
			c.Defaults.Trials = trials
		}
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Defaults.Workers = workers
		}
	}
}

// resolveScenarios fills fields the file left unset from the defaults block
func resolveScenarios(entries []scenarioEntry, defaults ScenarioDefaults) []study.ScenarioSpec {
	scenarios := make([]study.ScenarioSpec, len(entries))
	for i, e := range entries {
		s := study.ScenarioSpec{
			Name:       e.Name,
			Procedure:  e.Procedure,
			Groups:     e.Groups,
			SampleSize: defaults.SampleSize,
			Alpha:      defaults.Alpha,
			Bonferroni: e.Bonferroni,
			TTest:      e.TTest,
			Trials:     defaults.Trials,
			Seed:       defaults.Seed,
			Workers:    defaults.Workers,
		}
		if e.SampleSize != nil {
			s.SampleSize = *e.SampleSize
		}
		if e.Alpha != nil {
			s.Alpha = *e.Alpha
		}
		if e.Trials != nil {
			s.Trials = *e.Trials
		}
		if e.Seed != nil {
			s.Seed = *e.Seed
		}
		if e.Workers != nil {
			s.Workers = *e.Workers
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario-%d", i)
		}
		scenarios[i] = s
	}
	return scenarios
}

// Save writes a study file
func Save(path string, cfg *StudyConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
