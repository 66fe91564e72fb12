// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/tourney/internal/ports/primary"
)

// TeamAdapter is a thin adapter that translates CLI operations to TeamService
// and LedgerService calls.
type TeamAdapter struct {
	service primary.TeamService
	ledger  primary.LedgerService
	out     io.Writer
}

// NewTeamAdapter creates a new TeamAdapter with the given services.
func NewTeamAdapter(service primary.TeamService, ledger primary.LedgerService, out io.Writer) *TeamAdapter {
	return &TeamAdapter{
		service: service,
		ledger:  ledger,
		out:     out,
	}
}

// Register registers a team and prints its assigned number.
func (a *TeamAdapter) Register(ctx context.Context, req primary.RegisterTeamRequest) (*primary.RegisterTeamResponse, error) {
	resp, err := a.service.RegisterTeam(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Registered team %s: %s (%d members)\n",
		color.New(color.FgGreen, color.Bold).Sprint(resp.TeamNumber), resp.Team.Club, len(resp.Team.Roster))
	return resp, nil
}

// List lists all teams.
func (a *TeamAdapter) List(ctx context.Context) error {
	teams, err := a.service.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	if len(teams) == 0 {
		fmt.Fprintln(a.out, "No teams registered")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-28s %-14s %-8s %s\n", "NUM", "CLUB", "ORIGIN", "POINTS", "HELMSMAN")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────")
	for _, t := range teams {
		helmsman := ""
		if len(t.Roster) > 0 {
			helmsman = t.Roster[0].Name
		}
		fmt.Fprintf(a.out, "%-6s %-28s %-14s %-8d %s\n", t.Number, truncate(t.Club, 28), t.Origin, t.TotalPoints, helmsman)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a team looked up by number.
func (a *TeamAdapter) Show(ctx context.Context, number string) (*primary.Team, error) {
	team, err := a.service.GetTeamByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nTeam:    %s\n", team.Number)
	fmt.Fprintf(a.out, "Club:    %s\n", team.Club)
	if team.Country != "" {
		fmt.Fprintf(a.out, "Country: %s (%s)\n", team.Country, team.Origin)
	} else {
		fmt.Fprintf(a.out, "Origin:  %s\n", team.Origin)
	}
	if team.BoatName != "" || team.BoatRegistration != "" {
		fmt.Fprintf(a.out, "Boat:    %s %s\n", team.BoatName, team.BoatRegistration)
	}
	if team.DistanceKm != nil {
		fmt.Fprintf(a.out, "Distance: %.0f km\n", *team.DistanceKm)
	}
	if team.ContactPhone != "" {
		fmt.Fprintf(a.out, "Phone:   %s\n", team.ContactPhone)
	}
	fmt.Fprintf(a.out, "Points:  %s\n", color.New(color.Bold).Sprint(team.TotalPoints))
	fmt.Fprintf(a.out, "ID:      %s\n", team.ID)

	fmt.Fprintln(a.out, "\nRoster:")
	for i, m := range team.Roster {
		role := ""
		if i == 0 {
			role = color.New(color.FgCyan).Sprint(" [helmsman]")
		}
		category := m.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(a.out, "  %d. %-28s %-9s%s\n", i+1, m.Name, category, role)
	}
	fmt.Fprintln(a.out)

	return team, nil
}

// Update edits non-scoring team fields.
func (a *TeamAdapter) Update(ctx context.Context, req primary.UpdateTeamRequest) error {
	team, err := a.service.UpdateTeam(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Team %s updated\n", team.Number)
	return nil
}

// Delete deletes a team (by number) and all of its catches.
func (a *TeamAdapter) Delete(ctx context.Context, number string) error {
	team, err := a.service.GetTeamByNumber(ctx, number)
	if err != nil {
		return err
	}

	resp, err := a.ledger.DeleteTeam(ctx, team.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted team %s (%s) and %d catch(es)\n", resp.TeamNumber, team.Club, resp.CatchesRemoved)
	return nil
}

// ShowCounter prints the last assigned team number.
func (a *TeamAdapter) ShowCounter(ctx context.Context) error {
	current, err := a.service.CurrentTeamNumber(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Last assigned team number: %d (next: %03d)\n", current, current+1)
	return nil
}

// SetCounter sets the team counter.
func (a *TeamAdapter) SetCounter(ctx context.Context, value int) error {
	if err := a.service.InitTeamCounter(ctx, value); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Team counter set to %d (next team: %03d)\n", value, value+1)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
