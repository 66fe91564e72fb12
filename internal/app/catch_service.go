package app

import (
	"context"

	"github.com/example/tourney/internal/core/score"
	coreteam "github.com/example/tourney/internal/core/team"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/ports/secondary"
)

// CatchServiceImpl implements the CatchService interface.
// It turns a measured piece into points and hands it to the ledger inside the
// same transaction, so the piece count it scored against cannot change before
// the catch is written.
type CatchServiceImpl struct {
	transactor  secondary.Transactor
	teamRepo    secondary.TeamRepository
	catchRepo   secondary.CatchRepository
	speciesRepo secondary.SpeciesRepository
	ledger      primary.LedgerService
}

// NewCatchService creates a new CatchService with injected dependencies.
func NewCatchService(
	transactor secondary.Transactor,
	teamRepo secondary.TeamRepository,
	catchRepo secondary.CatchRepository,
	speciesRepo secondary.SpeciesRepository,
	ledger primary.LedgerService,
) *CatchServiceImpl {
	return &CatchServiceImpl{
		transactor:  transactor,
		teamRepo:    teamRepo,
		catchRepo:   catchRepo,
		speciesRepo: speciesRepo,
		ledger:      ledger,
	}
}

// RegisterCatch scores a piece and records it.
func (s *CatchServiceImpl) RegisterCatch(ctx context.Context, req primary.RegisterCatchRequest) (*primary.RecordCatchResponse, error) {
	var resp *primary.RecordCatchResponse
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		// 1. Load team and species
		team, err := s.teamRepo.GetByID(ctx, req.TeamID)
		if err != nil {
			return err
		}
		species, err := s.speciesRepo.GetByID(ctx, req.SpeciesID)
		if err != nil {
			return err
		}

		// 2. Check guard
		guardCtx := coreteam.RegisterCatchContext{
			TeamNumber: team.Number,
			Member:     req.Member,
			Roster:     team.RosterNames(),
			SizeCm:     req.SizeCm,
		}
		if result := coreteam.CanRegisterCatch(guardCtx); !result.Allowed {
			return result.Error()
		}
		member, _ := coreteam.FindMember(guardCtx.Roster, req.Member)

		// 3. Score the piece against the team's earlier pieces of the species
		pieceIndex, err := s.catchRepo.CountBySpecies(ctx, team.ID, species.ID)
		if err != nil {
			return err
		}
		piece := score.PiecePoints(species.Name, recordsToRules(species.Rules), pieceIndex, req.SizeCm)
		if !piece.Allowed {
			return apperrors.Invalid(piece.Reason)
		}

		// 4. Record through the ledger (joins this transaction)
		resp, err = s.ledger.RecordCatch(ctx, primary.CatchData{
			TeamID:    team.ID,
			Member:    member,
			SpeciesID: species.ID,
			SizeCm:    req.SizeCm,
			Points:    piece.Points,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListCatches lists catches, newest first.
func (s *CatchServiceImpl) ListCatches(ctx context.Context, filters primary.CatchFilters) ([]*primary.Catch, error) {
	records, err := s.catchRepo.List(ctx, secondary.CatchFilters{
		TeamID:    filters.TeamID,
		SpeciesID: filters.SpeciesID,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	catches := make([]*primary.Catch, len(records))
	for i, r := range records {
		catches[i] = recordToCatch(r)
	}
	return catches, nil
}

// GetCatch retrieves a single catch.
func (s *CatchServiceImpl) GetCatch(ctx context.Context, catchID string) (*primary.Catch, error) {
	record, err := s.catchRepo.GetByID(ctx, catchID)
	if err != nil {
		return nil, err
	}
	return recordToCatch(record), nil
}

func recordsToRules(records []secondary.PieceRuleRecord) []score.PieceRule {
	rules := make([]score.PieceRule, len(records))
	for i, r := range records {
		rules[i] = score.PieceRule{Points: r.Points, MinSizeCm: r.MinSizeCm, Mandatory: r.Mandatory}
	}
	return rules
}

// Ensure CatchServiceImpl implements the interface
var _ primary.CatchService = (*CatchServiceImpl)(nil)
