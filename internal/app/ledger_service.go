package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/tourney/internal/core/score"
	"github.com/example/tourney/internal/ctxutil"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/ports/secondary"
)

// LedgerServiceImpl implements the LedgerService interface.
//
// It is the only writer of teams.total_points. Every write happens inside a
// transaction that read the previous total, and goes through the
// version-guarded UpdateTotalPoints.
type LedgerServiceImpl struct {
	transactor secondary.Transactor
	teamRepo   secondary.TeamRepository
	catchRepo  secondary.CatchRepository
}

// NewLedgerService creates a new LedgerService with injected dependencies.
func NewLedgerService(
	transactor secondary.Transactor,
	teamRepo secondary.TeamRepository,
	catchRepo secondary.CatchRepository,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		transactor: transactor,
		teamRepo:   teamRepo,
		catchRepo:  catchRepo,
	}
}

// RecordCatch inserts a catch and credits its team in one transaction.
func (s *LedgerServiceImpl) RecordCatch(ctx context.Context, data primary.CatchData) (*primary.RecordCatchResponse, error) {
	guard := score.CanRecordCatch(score.RecordCatchContext{TeamID: data.TeamID, Points: data.Points})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	var resp *primary.RecordCatchResponse
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		team, err := s.teamRepo.GetByID(ctx, data.TeamID)
		if err != nil {
			return err
		}

		record := &secondary.CatchRecord{
			ID:        uuid.NewString(),
			TeamID:    team.ID,
			Member:    data.Member,
			SpeciesID: data.SpeciesID,
			SizeCm:    data.SizeCm,
			Points:    data.Points,
		}
		if err := s.catchRepo.Create(ctx, record); err != nil {
			return err
		}

		total := score.ApplyCatch(team.TotalPoints, data.Points)
		if err := s.teamRepo.UpdateTotalPoints(ctx, team.ID, total, team.Version); err != nil {
			return err
		}

		resp = &primary.RecordCatchResponse{
			Catch:       recordToCatch(record),
			TeamTotal:   total,
			TeamNumber:  team.Number,
			PointsAdded: data.Points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveCatch deletes a catch and debits its team in one transaction.
func (s *LedgerServiceImpl) RemoveCatch(ctx context.Context, catchID string) (*primary.RemoveCatchResponse, error) {
	var resp *primary.RemoveCatchResponse
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := s.catchRepo.GetByID(ctx, catchID)
		if err != nil {
			return err
		}

		team, err := s.teamRepo.GetByID(ctx, record.TeamID)
		if apperrors.CodeOf(err) == apperrors.CodeTeamNotFound {
			if err := s.catchRepo.Delete(ctx, record.ID); err != nil {
				return err
			}
			resp = &primary.RemoveCatchResponse{Catch: recordToCatch(record), Orphaned: true}
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.catchRepo.Delete(ctx, record.ID); err != nil {
			return err
		}

		total := score.ReverseCatch(team.TotalPoints, record.Points)
		if err := s.teamRepo.UpdateTotalPoints(ctx, team.ID, total, team.Version); err != nil {
			return err
		}

		resp = &primary.RemoveCatchResponse{Catch: recordToCatch(record), TeamTotal: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Orphaned {
		log.Printf("ledger: orphan reconciliation: removed catch %s of missing team %s (%d points, station %q); no team total updated",
			resp.Catch.ID, resp.Catch.TeamID, resp.Catch.Points, ctxutil.StationFromContext(ctx))
	}
	return resp, nil
}

// DeleteTeam deletes a team together with all of its catches.
func (s *LedgerServiceImpl) DeleteTeam(ctx context.Context, teamID string) (*primary.DeleteTeamResponse, error) {
	var resp *primary.DeleteTeamResponse
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return err
		}

		removed, err := s.catchRepo.DeleteByTeam(ctx, team.ID)
		if err != nil {
			return err
		}

		if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
			return err
		}

		resp = &primary.DeleteTeamResponse{
			TeamID:         team.ID,
			TeamNumber:     team.Number,
			CatchesRemoved: removed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ReconcileTeam recomputes a team's total from its catches.
func (s *LedgerServiceImpl) ReconcileTeam(ctx context.Context, teamID string) (*primary.ReconcileResult, error) {
	var result *primary.ReconcileResult
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return err
		}

		sum, err := s.catchRepo.SumPoints(ctx, team.ID)
		if err != nil {
			return err
		}

		result = &primary.ReconcileResult{
			TeamID:     team.ID,
			TeamNumber: team.Number,
			Before:     team.TotalPoints,
			After:      sum,
			Changed:    sum != team.TotalPoints,
		}
		if !result.Changed {
			return nil
		}
		return s.teamRepo.UpdateTotalPoints(ctx, team.ID, sum, team.Version)
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		log.Printf("ledger: reconciled team %s total %d -> %d", result.TeamNumber, result.Before, result.After)
	}
	return result, nil
}

// VerifyLedger compares every stored total with the sum of its catches.
func (s *LedgerServiceImpl) VerifyLedger(ctx context.Context) (*primary.LedgerReport, error) {
	var report *primary.LedgerReport
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return err
		}

		report = &primary.LedgerReport{TeamsChecked: len(teams)}
		for _, team := range teams {
			sum, err := s.catchRepo.SumPoints(ctx, team.ID)
			if err != nil {
				return err
			}
			if sum != team.TotalPoints {
				report.Discrepancies = append(report.Discrepancies, primary.LedgerDiscrepancy{
					TeamID:      team.ID,
					TeamNumber:  team.Number,
					StoredTotal: team.TotalPoints,
					CatchTotal:  sum,
				})
			}
		}

		orphans, err := s.catchRepo.ListOrphans(ctx)
		if err != nil {
			return err
		}
		for _, o := range orphans {
			report.OrphanCatches = append(report.OrphanCatches, recordToCatch(o))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Helper methods

func recordToCatch(r *secondary.CatchRecord) *primary.Catch {
	c := &primary.Catch{
		ID:        r.ID,
		TeamID:    r.TeamID,
		Member:    r.Member,
		SpeciesID: r.SpeciesID,
		SizeCm:    r.SizeCm,
		Points:    r.Points,
	}
	if !r.CaughtAt.IsZero() {
		c.CaughtAt = r.CaughtAt.Format(time.RFC3339)
	}
	return c
}

// Ensure LedgerServiceImpl implements the interface
var _ primary.LedgerService = (*LedgerServiceImpl)(nil)
