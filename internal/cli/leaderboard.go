package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/wire"
)

// LeaderboardCmd returns the leaderboard command
func LeaderboardCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Show standings",
	}

	cmd.PersistentFlags().IntVarP(&top, "top", "n", 0, "Show only the first n positions")

	cmd.AddCommand(&cobra.Command{
		Use:   "teams",
		Short: "Team standings by total points",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.LeaderboardAdapter().Teams(cmd.Context(), top)
		},
	})

	var category string
	members := &cobra.Command{
		Use:   "members",
		Short: "Individual standings, optionally within a category",
		Example: `  tourney leaderboard members --category damas --top 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.LeaderboardAdapter().Members(cmd.Context(), category, top)
		},
	}
	members.Flags().StringVarP(&category, "category", "c", "", "Infantil, Juvenil, Damas, General, Senior or Master")
	cmd.AddCommand(members)

	return cmd
}
