package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/tourney/internal/ports/primary"
)

// SpeciesAdapter translates species commands to SpeciesService calls.
type SpeciesAdapter struct {
	service primary.SpeciesService
	out     io.Writer
}

// NewSpeciesAdapter creates a new SpeciesAdapter.
func NewSpeciesAdapter(service primary.SpeciesService, out io.Writer) *SpeciesAdapter {
	return &SpeciesAdapter{service: service, out: out}
}

// Import loads a YAML catalog.
func (a *SpeciesAdapter) Import(ctx context.Context, path string) error {
	resp, err := a.service.ImportCatalog(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Imported %d species from %s\n", resp.Imported, path)
	for _, s := range resp.Species {
		fmt.Fprintf(a.out, "  %-12s %s\n", s.ID, s.Name)
	}
	return nil
}

// List prints the catalog.
func (a *SpeciesAdapter) List(ctx context.Context) error {
	list, err := a.service.ListSpecies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list species: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No species in the catalog")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-20s %-8s %s\n", "ID", "NAME", "CATEGORY", "PIECES (pts/min cm)")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range list {
		fmt.Fprintf(a.out, "%-12s %-20s %-8s %s\n", s.ID, truncate(s.Name, 20), s.Category, formatRules(s.Rules))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show prints one species with its rules.
func (a *SpeciesAdapter) Show(ctx context.Context, speciesID string) error {
	s, err := a.service.GetSpecies(ctx, speciesID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSpecies:  %s (%s)\n", s.Name, s.ID)
	fmt.Fprintf(a.out, "Category: %s\n", s.Category)
	for i, r := range s.Rules {
		mandatory := ""
		if r.Mandatory {
			mandatory = " (minimum size mandatory)"
		}
		fmt.Fprintf(a.out, "  piece %d: %d pts, min %.1f cm%s\n", i+1, r.Points, r.MinSizeCm, mandatory)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Delete removes a species.
func (a *SpeciesAdapter) Delete(ctx context.Context, speciesID string) error {
	if err := a.service.DeleteSpecies(ctx, speciesID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Species %s deleted\n", speciesID)
	return nil
}

func formatRules(rules []primary.PieceRule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		mark := ""
		if r.Mandatory {
			mark = "!"
		}
		parts[i] = fmt.Sprintf("%d/%.0f%s", r.Points, r.MinSizeCm, mark)
	}
	return strings.Join(parts, "  ")
}
