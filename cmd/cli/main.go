package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"multicomp/adapters/excel"
	"multicomp/adapters/rng"
	"multicomp/app"
	"multicomp/domain/study"
	"multicomp/internal/config"
	"multicomp/internal/report"
)

func main() {
	// Optional .env for MULTICOMP_* overrides; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "multicomp",
		Short: "Monte Carlo demonstration of the multiple-comparisons problem",
		Long: `multicomp draws synthetic group samples from a single population,
runs pairwise t-tests or a one-way ANOVA over many trials, and reports
empirical false-positive rates against theoretical expectations.`,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scenariosFrom(cmd *cobra.Command, configFile string, seed int64, trialCount, workers int) ([]study.ScenarioSpec, error) {
	if configFile == "" {
		return app.DefaultScenarios(seed, trialCount, workers), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	// Flags the user set explicitly win over the study file's values.
	flags := cmd.Flags()
	applyFlagOverrides(cfg.Scenarios,
		flags.Changed("seed"), seed,
		flags.Changed("trials"), trialCount,
		flags.Changed("workers"), workers)
	return cfg.Scenarios, nil
}

func applyFlagOverrides(scenarios []study.ScenarioSpec, seedSet bool, seed int64, trialsSet bool, trialCount int, workersSet bool, workers int) {
	for i := range scenarios {
		if seedSet {
			scenarios[i].Seed = seed
		}
		if trialsSet {
			scenarios[i].Trials = trialCount
		}
		if workersSet {
			scenarios[i].Workers = workers
		}
	}
}

func newRunCmd() *cobra.Command {
	var (
		seed       int64
		trialCount int
		workers    int
		configFile string
		format     string
		audit      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the study scenarios and print the report",
		Long: `Run the configured scenarios (or the reference demonstration when no
config is given) and print the false-positive report.

Example: multicomp run --seed 5000 --trials 1000 --format text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := scenariosFrom(cmd, configFile, seed, trialCount, workers)
			if err != nil {
				return err
			}

			svc := app.NewStudyService(rng.New())
			rep, err := svc.RunStudy(cmd.Context(), app.StudyRequest{Scenarios: scenarios, Audit: audit})
			if err != nil {
				return err
			}

			out, err := report.Render(rep, report.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "base seed for the random streams")
	cmd.Flags().IntVar(&trialCount, "trials", config.DefaultTrials, "trials per scenario")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel trial workers (1 = sequential)")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML study file (overrides the default scenarios)")
	cmd.Flags().StringVar(&format, "format", "text", "report format: text, markdown, html")
	cmd.Flags().BoolVar(&audit, "audit", false, "include the sampling audit in the report")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		seed       int64
		trialCount int
		workers    int
		groupsMin  int
		groupsMax  int
		alpha      float64
		bonferroni bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep the group count to show false-positive inflation",
		Long: `Run the pairwise procedure across a range of group counts, showing how
the familywise false-positive rate inflates with the number of comparisons.

Example: multicomp sweep --groups-min 2 --groups-max 20 --alpha 0.05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if groupsMin < 2 || groupsMax < groupsMin {
				return fmt.Errorf("invalid group range [%d, %d]", groupsMin, groupsMax)
			}

			var scenarios []study.ScenarioSpec
			for k := groupsMin; k <= groupsMax; k++ {
				scenarios = append(scenarios, study.ScenarioSpec{
					Name:       fmt.Sprintf("pairwise-%d-groups", k),
					Procedure:  study.ProcedureAllPairs,
					Groups:     k,
					SampleSize: config.DefaultSampleSize,
					Alpha:      alpha,
					Bonferroni: bonferroni,
					Trials:     trialCount,
					Seed:       seed,
					Workers:    workers,
				})
			}

			svc := app.NewStudyService(rng.New())
			rep, err := svc.RunStudy(cmd.Context(), app.StudyRequest{Scenarios: scenarios})
			if err != nil {
				return err
			}

			out, err := report.Render(rep, report.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "base seed for the random streams")
	cmd.Flags().IntVar(&trialCount, "trials", config.DefaultTrials, "trials per group count")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel trial workers")
	cmd.Flags().IntVar(&groupsMin, "groups-min", 2, "smallest group count")
	cmd.Flags().IntVar(&groupsMax, "groups-max", 20, "largest group count")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "per-test significance threshold")
	cmd.Flags().BoolVar(&bonferroni, "bonferroni", false, "divide alpha by the number of pairwise tests")
	cmd.Flags().StringVar(&format, "format", "text", "report format: text, markdown, html")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		seed       int64
		trialCount int
		workers    int
		configFile string
		out        string
		audit      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the study and export the report as an Excel workbook",
		Long: `Run the configured scenarios and write the results to an .xlsx workbook.

Example: multicomp export --out report.xlsx --trials 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := scenariosFrom(cmd, configFile, seed, trialCount, workers)
			if err != nil {
				return err
			}

			svc := app.NewStudyService(rng.New())
			rep, err := svc.RunStudy(cmd.Context(), app.StudyRequest{Scenarios: scenarios, Audit: audit})
			if err != nil {
				return err
			}

			writer := excel.NewReportWriter(out)
			if err := writer.WriteReport(cmd.Context(), rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d scenarios)\n", out, len(rep.Results))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "base seed for the random streams")
	cmd.Flags().IntVar(&trialCount, "trials", config.DefaultTrials, "trials per scenario")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel trial workers")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML study file (overrides the default scenarios)")
	cmd.Flags().StringVar(&out, "out", "multicomp-report.xlsx", "output workbook path")
	cmd.Flags().BoolVar(&audit, "audit", false, "include the sampling audit sheet")
	return cmd
}
