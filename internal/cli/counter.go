package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/wire"
)

// CounterCmd returns the counter command
func CounterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Show or set the team number counter",
		Long: `The counter holds the last assigned team number. Registering a team
reserves counter+1 and advances it.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the last assigned team number",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TeamAdapter().ShowCounter(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [value]",
		Short: "Set the last assigned team number",
		Long: `Set the counter. The next team registered gets value+1.
The counter only moves forward: a value below the current counter or below
a number already assigned is refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid counter value %q", args[0])
			}
			return wire.TeamAdapter().SetCounter(cmd.Context(), value)
		},
	})

	return cmd
}
