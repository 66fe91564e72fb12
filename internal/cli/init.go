package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/config"
	"github.com/example/tourney/internal/db"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		counter     int
		seed        bool
		tournament  string
		homeCountry string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the tournament database",
		Long: `Initialize the tournament database with the required schema and the team
number counter. Without --counter the counter starts at 0, so the first team
registered is 001. An existing counter is left alone unless --counter is given.

Examples:
  tourney init
  tourney init --counter 100 --tournament "Concurso del Dorado 2026"
  tourney init --seed                    # development species catalog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if cmd.Flags().Changed("tournament") || cmd.Flags().Changed("home-country") {
				if err := saveTournamentConfig(tournament, homeCountry); err != nil {
					return err
				}
				fmt.Printf("✓ Configuration written to %s\n", config.Path("."))
			}

			fmt.Printf("Initializing tournament database at %s\n", wire.DBPath())
			fmt.Println("✓ Database schema up to date")

			if seed {
				if err := db.SeedFixtures(wire.DB()); err != nil {
					return fmt.Errorf("failed to seed database: %w", err)
				}
				fmt.Println("✓ Seeded development species catalog")
			}

			teams := wire.TeamService()
			_, err := teams.CurrentTeamNumber(ctx)
			missing := errors.Is(err, apperrors.ErrPreconditionMissing)
			if err != nil && !missing {
				return err
			}
			if missing || cmd.Flags().Changed("counter") {
				if err := teams.InitTeamCounter(ctx, counter); err != nil {
					return err
				}
				fmt.Printf("✓ Team counter set to %d (next team: %03d)\n", counter, counter+1)
			} else {
				fmt.Println("✓ Team counter already initialized")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  tourney species import species.yaml")
			fmt.Println("  tourney team register --club \"Club de Pesca\" --member \"Juan Pérez,1980-05-02,M\"")

			return nil
		},
	}

	cmd.Flags().IntVar(&counter, "counter", 0, "Initial team counter (last assigned number)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Load the development species catalog")
	cmd.Flags().StringVar(&tournament, "tournament", "", "Tournament name to store in .tourney/config.json")
	cmd.Flags().StringVar(&homeCountry, "home-country", "", "Home country for national/international origin")

	return cmd
}

func saveTournamentConfig(tournament, homeCountry string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		cfg = config.Default()
	}
	if tournament != "" {
		cfg.TournamentName = tournament
	}
	if homeCountry != "" {
		cfg.HomeCountry = homeCountry
	}
	return config.SaveConfig(dir, cfg)
}
