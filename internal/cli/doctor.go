package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/wire"
)

// DoctorCmd returns the doctor command for ledger verification
func DoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Verify team totals against their catches",
		Long: `Compare every team's stored total with the sum of its catches and list
catches whose team no longer exists.

Examples:
  tourney doctor          # Report only (exit 1 when inconsistent)
  tourney doctor --fix    # Recompute drifted totals and remove orphan catches`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := wire.LedgerAdapter().Doctor(cmd.Context(), fix)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("ledger is inconsistent")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair drifted totals and orphan catches")

	return cmd
}
