package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/wire"
)

// TeamCmd returns the team command
func TeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Register and manage teams",
	}

	cmd.AddCommand(teamRegisterCmd())
	cmd.AddCommand(teamListCmd())
	cmd.AddCommand(teamShowCmd())
	cmd.AddCommand(teamUpdateCmd())
	cmd.AddCommand(teamDeleteCmd())

	return cmd
}

// teamFlags holds the flags shared by register and update.
type teamFlags struct {
	club         string
	country      string
	distance     float64
	boat         string
	registration string
	phone        string
	members      []string
}

func (f *teamFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.club, "club", "", "Club name")
	cmd.Flags().StringVar(&f.country, "country", "", "Country of origin")
	cmd.Flags().Float64Var(&f.distance, "distance", 0, "Distance travelled in km")
	cmd.Flags().StringVar(&f.boat, "boat", "", "Boat name")
	cmd.Flags().StringVar(&f.registration, "registration", "", "Boat registration")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Contact phone")
	cmd.Flags().StringArrayVarP(&f.members, "member", "m", nil,
		`Roster member as "Name[,YYYY-MM-DD[,M|F]]"; repeat in order, helmsman first`)
}

func (f *teamFlags) roster() ([]primary.MemberInput, error) {
	if f.members == nil {
		return nil, nil
	}
	roster := make([]primary.MemberInput, 0, len(f.members))
	for _, raw := range f.members {
		m, err := parseMember(raw)
		if err != nil {
			return nil, err
		}
		roster = append(roster, m)
	}
	return roster, nil
}

func (f *teamFlags) distanceKm(cmd *cobra.Command) *float64 {
	if !cmd.Flags().Changed("distance") {
		return nil
	}
	d := f.distance
	return &d
}

func teamRegisterCmd() *cobra.Command {
	var f teamFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a team and assign the next team number",
		Example: `  tourney team register --club "Club Náutico Encarnación" --country Paraguay \
    -m "Juan Benítez,1960-01-10,M" -m "Ana Rojas,1990-07-21,F" -m "Luis Rojas"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := f.roster()
			if err != nil {
				return err
			}

			_, err = wire.TeamAdapter().Register(cmd.Context(), primary.RegisterTeamRequest{
				Club:             f.club,
				Country:          f.country,
				DistanceKm:       f.distanceKm(cmd),
				BoatName:         f.boat,
				BoatRegistration: f.registration,
				ContactPhone:     f.phone,
				Roster:           roster,
			})
			return err
		},
	}

	f.bind(cmd)

	return cmd
}

func teamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TeamAdapter().List(cmd.Context())
		},
	}
}

func teamShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [team-number]",
		Short: "Show team details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TeamAdapter().Show(cmd.Context(), args[0])
			return err
		},
	}
}

func teamUpdateCmd() *cobra.Command {
	var f teamFlags

	cmd := &cobra.Command{
		Use:   "update [team-number]",
		Short: "Edit team details (points are not editable)",
		Long: `Edit team details. Only the flags given are changed; --member replaces the
whole roster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roster, err := f.roster()
			if err != nil {
				return err
			}

			team, err := wire.TeamService().GetTeamByNumber(ctx, args[0])
			if err != nil {
				return err
			}

			return wire.TeamAdapter().Update(ctx, primary.UpdateTeamRequest{
				TeamID:           team.ID,
				Club:             f.club,
				Country:          f.country,
				DistanceKm:       f.distanceKm(cmd),
				BoatName:         f.boat,
				BoatRegistration: f.registration,
				ContactPhone:     f.phone,
				Roster:           roster,
			})
		},
	}

	f.bind(cmd)

	return cmd
}

func teamDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [team-number]",
		Short: "Delete a team and all of its catches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting team %s removes all of its catches; re-run with --yes to confirm", args[0])
			}
			return wire.TeamAdapter().Delete(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")

	return cmd
}

// parseMember parses "Name[,YYYY-MM-DD[,M|F]]". Empty trailing fields are allowed.
func parseMember(raw string) (primary.MemberInput, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > 3 {
		return primary.MemberInput{}, fmt.Errorf("invalid member %q: want \"Name[,YYYY-MM-DD[,M|F]]\"", raw)
	}

	m := primary.MemberInput{Name: strings.TrimSpace(parts[0])}
	if m.Name == "" {
		return primary.MemberInput{}, fmt.Errorf("invalid member %q: name is required", raw)
	}
	if len(parts) > 1 {
		m.BirthDate = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		m.Sex = strings.TrimSpace(parts[2])
	}
	return m, nil
}
