package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"stagehand/bootstrap"
	"stagehand/config"
	"stagehand/core"
	"stagehand/orchestrate"
)

func newRunCmd() *cobra.Command {
	var (
		startDate   string
		days        int
		scale       float64
		seed        int64
		parallelism int
		outputDir   string
		sources     []string
		scenarios   []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the configured data set",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sugar := bootstrap.InitLogger(quiet)

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			// Flags beat file and environment.
			flags := cmd.Flags()
			if flags.Changed("start-date") {
				cfg.StartDate = startDate
			}
			if flags.Changed("days") {
				cfg.Days = days
			}
			if flags.Changed("scale") {
				cfg.Scale = scale
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("parallelism") {
				cfg.Parallelism = parallelism
			}
			if flags.Changed("output") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("sources") {
				cfg.Sources = sources
			}
			if flags.Changed("scenarios") {
				cfg.Scenarios = scenarios
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			run, err := bootstrap.Build(cfg, sugar)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var spin *spinner.Spinner
			if !quiet && !outputJSON {
				spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
					spinner.WithWriter(os.Stderr))
				spin.Suffix = fmt.Sprintf(" generating %d sources over %d days...",
					len(run.Sources), cfg.Days)
				spin.Start()
			}

			started := time.Now()
			report := run.Runner.Run(ctx)
			if spin != nil {
				spin.Stop()
			}

			printReport(report, time.Since(started))
			if report.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "First simulated day (YYYY-MM-DD, UTC)")
	cmd.Flags().IntVar(&days, "days", config.DefaultDays, "Number of simulated days")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "Baseline volume multiplier")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Deterministic run seed")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "Worker lane count")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./out", "Output directory")
	cmd.Flags().StringSliceVar(&sources, "sources", []string{"all"}, "Sources to generate")
	cmd.Flags().StringSliceVar(&scenarios, "scenarios", []string{"all"},
		"Scenarios to activate (names, 'all', or attack/ops/network)")
	return cmd
}

func printReport(report *orchestrate.Report, elapsed time.Duration) {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}

	headerColor.Println("\nGeneration report")
	ids := make([]string, 0, len(report.PerSource))
	for id := range report.PerSource {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := report.PerSource[core.SourceID(id)]
		switch st.State {
		case orchestrate.StateSuccess:
			successColor.Printf("  %-14s", st.State)
		case orchestrate.StatePartial:
			warningColor.Printf("  %-14s", st.State)
		default:
			errorColor.Printf("  %-14s", st.State)
		}
		fmt.Printf(" %-14s %8d events", id, st.EventCount)
		if st.Err != "" {
			fmt.Printf("  (%s)", st.Err)
		}
		fmt.Println()
	}
	fmt.Printf("\n%d events across %d sources in %s\n",
		report.TotalEvents(), len(report.PerSource), elapsed.Round(time.Millisecond))
}
