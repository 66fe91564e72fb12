package primary

import "context"

// LedgerService is the score ledger: the only writer of team totals.
type LedgerService interface {
	// RecordCatch inserts a catch with precomputed points and credits the
	// owning team in one transaction. Fails with TEAM_NOT_FOUND when the team
	// does not exist, leaving no catch behind.
	RecordCatch(ctx context.Context, data CatchData) (*RecordCatchResponse, error)

	// RemoveCatch deletes a catch and debits its points (clamped at zero) in one
	// transaction. Fails with CATCH_NOT_FOUND for unknown ids. A catch whose
	// team is gone is deleted without touching any total.
	RemoveCatch(ctx context.Context, catchID string) (*RemoveCatchResponse, error)

	// DeleteTeam deletes a team and all of its catches in one transaction.
	DeleteTeam(ctx context.Context, teamID string) (*DeleteTeamResponse, error)

	// ReconcileTeam recomputes a team's total from its catches and rewrites it
	// when it drifted.
	ReconcileTeam(ctx context.Context, teamID string) (*ReconcileResult, error)

	// VerifyLedger compares every team total with the sum of its catches
	// without writing anything.
	VerifyLedger(ctx context.Context) (*LedgerReport, error)
}

// CatchData is a validated catch with its points already computed.
type CatchData struct {
	TeamID    string
	Member    string
	SpeciesID string
	SizeCm    float64
	Points    int
}

// RecordCatchResponse contains the stored catch and the team total after commit.
type RecordCatchResponse struct {
	Catch       *Catch
	TeamTotal   int
	TeamNumber  string
	PointsAdded int
}

// RemoveCatchResponse describes a committed removal.
type RemoveCatchResponse struct {
	Catch     *Catch
	TeamTotal int  // total after removal; 0 when Orphaned
	Orphaned  bool // the owning team no longer existed
}

// DeleteTeamResponse describes a committed team deletion.
type DeleteTeamResponse struct {
	TeamID         string
	TeamNumber     string
	CatchesRemoved int
}

// ReconcileResult reports a reconciliation.
type ReconcileResult struct {
	TeamID     string
	TeamNumber string
	Before     int
	After      int
	Changed    bool
}

// LedgerReport is the outcome of a ledger verification.
type LedgerReport struct {
	TeamsChecked  int
	Discrepancies []LedgerDiscrepancy
	OrphanCatches []*Catch
}

// Consistent reports whether the ledger holds no drift and no orphans.
func (r *LedgerReport) Consistent() bool {
	return len(r.Discrepancies) == 0 && len(r.OrphanCatches) == 0
}

// LedgerDiscrepancy is a team whose stored total differs from its catches.
type LedgerDiscrepancy struct {
	TeamID      string
	TeamNumber  string
	StoredTotal int
	CatchTotal  int
}

// Catch represents a catch at the port boundary.
type Catch struct {
	ID        string
	TeamID    string
	Member    string
	SpeciesID string
	SizeCm    float64
	Points    int
	CaughtAt  string
}
