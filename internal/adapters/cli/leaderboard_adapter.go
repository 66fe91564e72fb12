package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tourney/internal/ports/primary"
)

// LeaderboardAdapter prints standings.
type LeaderboardAdapter struct {
	service primary.LeaderboardService
	out     io.Writer
}

// NewLeaderboardAdapter creates a new LeaderboardAdapter.
func NewLeaderboardAdapter(service primary.LeaderboardService, out io.Writer) *LeaderboardAdapter {
	return &LeaderboardAdapter{service: service, out: out}
}

// Teams prints the team standings.
func (a *LeaderboardAdapter) Teams(ctx context.Context, top int) error {
	standings, err := a.service.TeamStandings(ctx)
	if err != nil {
		return err
	}

	if len(standings) == 0 {
		fmt.Fprintln(a.out, "No teams registered")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-5s %-6s %-30s %s\n", "POS", "TEAM", "CLUB", "POINTS")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────")
	for i, s := range standings {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(a.out, "%-5s %-6s %-30s %d\n", position(s.Rank), s.TeamNumber, truncate(s.Club, 30), s.TotalPoints)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Members prints the individual standings, optionally for one category.
func (a *LeaderboardAdapter) Members(ctx context.Context, category string, top int) error {
	standings, err := a.service.MemberStandings(ctx, category)
	if err != nil {
		return err
	}

	if len(standings) == 0 {
		fmt.Fprintln(a.out, "No catches recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-5s %-24s %-6s %-9s %-7s %s\n", "POS", "MEMBER", "TEAM", "CATEGORY", "PIECES", "POINTS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for i, s := range standings {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(a.out, "%-5s %-24s %-6s %-9s %-7d %d\n",
			position(s.Rank), truncate(s.Member, 24), s.TeamNumber, s.Category, s.Catches, s.TotalPoints)
	}
	fmt.Fprintln(a.out)

	return nil
}

func position(rank int) string {
	p := fmt.Sprintf("%d.", rank)
	if rank == 1 {
		return color.New(color.FgYellow, color.Bold).Sprint(p)
	}
	return p
}
