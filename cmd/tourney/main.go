package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/cli"
	"github.com/example/tourney/internal/ctxutil"
	"github.com/example/tourney/internal/telemetry"
	"github.com/example/tourney/internal/version"
	"github.com/example/tourney/internal/wire"
)

func main() {
	// A .env next to the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("tourney: ignoring .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:     "tourney",
		Short:   "Tournament scoring ledger for fishing competitions",
		Version: version.String(),
		Long: `tourney registers teams, assigns team numbers, records and removes catches,
and keeps every team's total points consistent with its catches, even when
several weigh-in stations write to the same ledger at once.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.CounterCmd())
	rootCmd.AddCommand(cli.TeamCmd())
	rootCmd.AddCommand(cli.CatchCmd())
	rootCmd.AddCommand(cli.SpeciesCmd())
	rootCmd.AddCommand(cli.LeaderboardCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	os.Exit(run(rootCmd))
}

func run(rootCmd *cobra.Command) int {
	ctx := context.Background()
	cfg := wire.Config()

	shutdown, err := telemetry.Setup(ctx, "tourney", wire.StationID(), cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Printf("tourney: tracing disabled: %v", err)
	}
	defer shutdown(ctx)
	defer wire.Close()

	ctx = ctxutil.WithStationID(ctx, wire.StationID())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		return 1
	}
	return 0
}
