package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tourney/internal/wire"
)

// SpeciesCmd returns the species command
func SpeciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Manage the species catalog and piece rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import [catalog.yaml]",
		Short: "Import species and piece rules from a YAML catalog",
		Long: `Import a species catalog. Every entry is validated before anything is
saved; existing species with the same id are replaced.

  species:
    - id: dorado
      name: Dorado
      category: de_ley
      pieces:
        - {points: 100, min_size_cm: 70, mandatory: true}
        - {points: 80, min_size_cm: 70}
        - {points: 120, min_size_cm: 75}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpeciesAdapter().Import(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List species",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpeciesAdapter().List(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [species-id]",
		Short: "Show a species and its piece rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpeciesAdapter().Show(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [species-id]",
		Short: "Delete a species (recorded catches keep their points)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpeciesAdapter().Delete(cmd.Context(), args[0])
		},
	})

	return cmd
}
