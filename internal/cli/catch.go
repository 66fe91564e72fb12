package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/wire"
)

// CatchCmd returns the catch command
func CatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catch",
		Short: "Record and remove catches",
	}

	cmd.AddCommand(catchRegisterCmd())
	cmd.AddCommand(catchRecordCmd())
	cmd.AddCommand(catchListCmd())
	cmd.AddCommand(catchRemoveCmd())

	return cmd
}

func catchRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [team-number] [member] [species] [size-cm]",
		Short: "Register a measured piece, scored from the species rules",
		Example: `  tourney catch register 006 "Ana Rojas" dorado 74.5`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid size %q", args[3])
			}
			return wire.CatchAdapter().Register(cmd.Context(), args[0], args[1], args[2], size)
		},
	}
}

func catchRecordCmd() *cobra.Command {
	var (
		points int
		size   float64
	)

	cmd := &cobra.Command{
		Use:   "record [team-number] [member] [species]",
		Short: "Record a catch with explicit points",
		Long: `Record a catch with points decided by the jury, bypassing the species
piece rules. The team total is credited in the same transaction.`,
		Example: `  tourney catch record 006 "Ana Rojas" dorado --points 120 --size 80`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatchAdapter().Record(cmd.Context(), args[0], args[1], args[2], size, points)
		},
	}

	cmd.Flags().IntVarP(&points, "points", "p", 0, "Points awarded (required)")
	cmd.Flags().Float64VarP(&size, "size", "s", 0, "Size in cm")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

func catchListCmd() *cobra.Command {
	var (
		team  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatchAdapter().List(cmd.Context(), team, limit)
		},
	}

	cmd.Flags().StringVarP(&team, "team", "t", "", "Filter by team number")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n catches")

	return cmd
}

func catchRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [catch-id]",
		Short: "Remove a catch and debit its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatchAdapter().Remove(cmd.Context(), args[0])
		},
	}
}
