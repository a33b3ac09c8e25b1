package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dodger/internal/config"
	"github.com/vovakirdan/space-dodger/internal/games/dodger"
	"github.com/vovakirdan/space-dodger/internal/platform/headless"
)

var (
	flagSimRuns     int
	flagSimTicks    int
	flagSimSeedBase int64
	flagSimIdle     bool
	flagSimWorkers  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless games with the autopilot",
	Long: `Play games without a display and print a summary. Run i uses seed
seed-base+i, so results are reproducible. Simulated runs are not recorded.

Examples:
  dodger simulate
  dodger simulate --runs 100 --ticks 36000
  dodger simulate --idle          # Nobody at the controls`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Tick budget per run (0 = until collision)")
	simulateCmd.Flags().Int64Var(&flagSimSeedBase, "seed-base", 1, "Seed of the first run")
	simulateCmd.Flags().BoolVar(&flagSimIdle, "idle", false, "Do not steer")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel runs (0 = one per CPU)")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	logger, closeLog := newLogger(os.Stderr, "dodger-sim")
	defer closeLog()

	cfg, err := config.LoadDodger(flagConfig)
	if err != nil {
		closeLog()
		fatal("%v", err)
	}
	if flagSimRuns <= 0 {
		closeLog()
		fatal("--runs must be positive")
	}

	batch := headless.Batch{
		Runs:     flagSimRuns,
		MaxTicks: flagSimTicks,
		SeedBase: flagSimSeedBase,
		Workers:  flagSimWorkers,
		NewGame: func() *dodger.Game {
			return dodger.New(dodger.WithConfig(cfg), dodger.WithLogger(logger))
		},
	}
	if !flagSimIdle {
		batch.NewSource = func() headless.Source { return headless.NewAutopilot() }
	}

	logger.Debug("simulating", "runs", batch.Runs, "ticks", batch.MaxTicks, "seed_base", batch.SeedBase)
	reports, err := batch.Run(cmd.Context())
	if err != nil {
		closeLog()
		fatal("simulation: %v", err)
	}

	rows := make([][]string, len(reports))
	for i, r := range reports {
		outcome := "hit"
		if !r.Ended {
			outcome = "survived"
		}
		rows[i] = []string{
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.Score),
			outcome,
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Seed", "Ticks", "Score", "Outcome").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Println(t)

	s := headless.Summarize(reports)
	fmt.Printf("Runs: %d   Survived: %d   Best: %d (seed %d)   Avg score: %.1f   Avg ticks: %.0f\n",
		s.Runs, s.Survived, s.BestScore, s.BestSeed, s.AvgScore, s.AvgTicks)
}
