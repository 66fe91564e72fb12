package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tourney/internal/ports/primary"
)

// CatchAdapter translates catch commands to CatchService and LedgerService calls.
// Teams are addressed by number on the command line.
type CatchAdapter struct {
	teams   primary.TeamService
	catches primary.CatchService
	ledger  primary.LedgerService
	out     io.Writer
}

// NewCatchAdapter creates a new CatchAdapter.
func NewCatchAdapter(teams primary.TeamService, catches primary.CatchService, ledger primary.LedgerService, out io.Writer) *CatchAdapter {
	return &CatchAdapter{
		teams:   teams,
		catches: catches,
		ledger:  ledger,
		out:     out,
	}
}

// Register scores a measured piece from the species rules and records it.
func (a *CatchAdapter) Register(ctx context.Context, teamNumber, member, speciesID string, sizeCm float64) error {
	team, err := a.teams.GetTeamByNumber(ctx, teamNumber)
	if err != nil {
		return err
	}

	resp, err := a.catches.RegisterCatch(ctx, primary.RegisterCatchRequest{
		TeamID:    team.ID,
		Member:    member,
		SpeciesID: speciesID,
		SizeCm:    sizeCm,
	})
	if err != nil {
		return err
	}

	a.printRecorded(resp)
	return nil
}

// Record records a catch with points decided by the operator.
func (a *CatchAdapter) Record(ctx context.Context, teamNumber, member, speciesID string, sizeCm float64, points int) error {
	team, err := a.teams.GetTeamByNumber(ctx, teamNumber)
	if err != nil {
		return err
	}

	resp, err := a.ledger.RecordCatch(ctx, primary.CatchData{
		TeamID:    team.ID,
		Member:    member,
		SpeciesID: speciesID,
		SizeCm:    sizeCm,
		Points:    points,
	})
	if err != nil {
		return err
	}

	a.printRecorded(resp)
	return nil
}

// List lists catches, optionally for one team.
func (a *CatchAdapter) List(ctx context.Context, teamNumber string, limit int) error {
	filters := primary.CatchFilters{Limit: limit}
	numbers := map[string]string{}

	if teamNumber != "" {
		team, err := a.teams.GetTeamByNumber(ctx, teamNumber)
		if err != nil {
			return err
		}
		filters.TeamID = team.ID
		numbers[team.ID] = team.Number
	} else {
		teams, err := a.teams.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		for _, t := range teams {
			numbers[t.ID] = t.Number
		}
	}

	catches, err := a.catches.ListCatches(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list catches: %w", err)
	}

	if len(catches) == 0 {
		fmt.Fprintln(a.out, "No catches found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s %-5s %-22s %-10s %7s %6s  %s\n", "ID", "TEAM", "MEMBER", "SPECIES", "SIZE", "PTS", "CAUGHT")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────────────────────────")
	for _, c := range catches {
		number, ok := numbers[c.TeamID]
		if !ok {
			number = color.New(color.FgRed).Sprint("gone")
		}
		fmt.Fprintf(a.out, "%-36s %-5s %-22s %-10s %6.1fcm %6d  %s\n",
			c.ID, number, truncate(c.Member, 22), c.SpeciesID, c.SizeCm, c.Points, c.CaughtAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Remove removes a catch and reports the team's new total.
func (a *CatchAdapter) Remove(ctx context.Context, catchID string) error {
	resp, err := a.ledger.RemoveCatch(ctx, catchID)
	if err != nil {
		return err
	}

	if resp.Orphaned {
		fmt.Fprintf(a.out, "%s Removed catch %s (%d pts); its team no longer exists, no total changed\n",
			color.New(color.FgYellow).Sprint("!"), resp.Catch.ID, resp.Catch.Points)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Removed catch %s (-%d pts), team total now %d\n", resp.Catch.ID, resp.Catch.Points, resp.TeamTotal)
	return nil
}

func (a *CatchAdapter) printRecorded(resp *primary.RecordCatchResponse) {
	fmt.Fprintf(a.out, "✓ Recorded %s %.1f cm for %s, team %s: %s pts (total %d)\n",
		resp.Catch.SpeciesID, resp.Catch.SizeCm, resp.Catch.Member, resp.TeamNumber,
		color.New(color.FgGreen).Sprintf("+%d", resp.PointsAdded), resp.TeamTotal)
	fmt.Fprintf(a.out, "  catch id: %s\n", resp.Catch.ID)
}
