// scoutsim drives a running matchbookd with generated scout submissions
// and prints the resulting team rankings. Intended for demos and load
// drills against a local instance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kestrelrobotics/matchbook/internal/simulate"
	"github.com/kestrelrobotics/matchbook/pkg/logger"
)

var (
	addr      string
	eventKey  string
	matches   int
	teamCount int
	firstTeam int
	seed      int64
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:           "scoutsim",
	Short:         "Generate scouted matches against a running matchbookd.",
	Long:          `scoutsim simulates an event: it drives the real capture state machine to produce per-robot submissions, posts them to the service, and reports the aggregated team rankings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "http://localhost:9080", "base URL of the running service")
	rootCmd.Flags().StringVar(&eventKey, "event", "2026sim", "event key used in generated match keys")
	rootCmd.Flags().IntVar(&matches, "matches", 30, "number of qualification matches to simulate")
	rootCmd.Flags().IntVar(&teamCount, "teams", 12, "number of teams in the pool (minimum 6)")
	rootCmd.Flags().IntVar(&firstTeam, "first-team", 100, "lowest team number in the pool")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "random seed for reproducible runs")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored report output")
}

func run(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	teams := make([]int, teamCount)
	for i := range teams {
		teams[i] = firstTeam + i
	}

	runner, err := simulate.NewRunner(addr, simulate.Options{
		EventKey: eventKey,
		Matches:  matches,
		Teams:    teams,
		Seed:     seed,
		Colors:   !noColor,
	})
	if err != nil {
		return err
	}
	return runner.Run(ctx, os.Stdout)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "scoutsim:", err)
		os.Exit(1)
	}
}
