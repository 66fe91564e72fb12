package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tourney/internal/ports/primary"
)

// LedgerAdapter prints ledger verification and repairs it on request.
type LedgerAdapter struct {
	ledger primary.LedgerService
	out    io.Writer
}

// NewLedgerAdapter creates a new LedgerAdapter.
func NewLedgerAdapter(ledger primary.LedgerService, out io.Writer) *LedgerAdapter {
	return &LedgerAdapter{ledger: ledger, out: out}
}

// Doctor checks every team total against its catches. With fix, drifted
// totals are recomputed and orphan catches removed. It returns whether the
// ledger is consistent at the end.
func (a *LedgerAdapter) Doctor(ctx context.Context, fix bool) (bool, error) {
	report, err := a.ledger.VerifyLedger(ctx)
	if err != nil {
		return false, err
	}

	ok := color.New(color.FgGreen).Sprint("✓")
	warn := color.New(color.FgYellow).Sprint("!")

	fmt.Fprintf(a.out, "Checked %d team(s)\n", report.TeamsChecked)
	if report.Consistent() {
		fmt.Fprintf(a.out, "%s Ledger consistent\n", ok)
		return true, nil
	}

	for _, d := range report.Discrepancies {
		fmt.Fprintf(a.out, "%s Team %s: stored %d, catches sum to %d\n", warn, d.TeamNumber, d.StoredTotal, d.CatchTotal)
	}
	for _, c := range report.OrphanCatches {
		fmt.Fprintf(a.out, "%s Orphan catch %s (team %s, %d pts)\n", warn, c.ID, c.TeamID, c.Points)
	}

	if !fix {
		fmt.Fprintln(a.out, "Run with --fix to repair")
		return false, nil
	}

	for _, d := range report.Discrepancies {
		result, err := a.ledger.ReconcileTeam(ctx, d.TeamID)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(a.out, "%s Team %s total %d -> %d\n", ok, result.TeamNumber, result.Before, result.After)
	}
	for _, c := range report.OrphanCatches {
		if _, err := a.ledger.RemoveCatch(ctx, c.ID); err != nil {
			return false, err
		}
		fmt.Fprintf(a.out, "%s Removed orphan catch %s\n", ok, c.ID)
	}
	return true, nil
}
