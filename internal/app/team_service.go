package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	coreteam "github.com/example/tourney/internal/core/team"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/ports/secondary"
)

// TeamServiceImpl implements the TeamService interface.
// RegisterTeam is the sequence generator: the team number is reserved and the
// team inserted in the same transaction.
type TeamServiceImpl struct {
	transactor  secondary.Transactor
	teamRepo    secondary.TeamRepository
	counterRepo secondary.CounterRepository
	homeCountry string
	now         func() time.Time
}

// NewTeamService creates a new TeamService with injected dependencies.
// homeCountry decides whether a team is national or international.
func NewTeamService(
	transactor secondary.Transactor,
	teamRepo secondary.TeamRepository,
	counterRepo secondary.CounterRepository,
	homeCountry string,
) *TeamServiceImpl {
	return &TeamServiceImpl{
		transactor:  transactor,
		teamRepo:    teamRepo,
		counterRepo: counterRepo,
		homeCountry: homeCountry,
		now:         time.Now,
	}
}

// RegisterTeam reserves the next team number and inserts the team.
func (s *TeamServiceImpl) RegisterTeam(ctx context.Context, req primary.RegisterTeamRequest) (*primary.RegisterTeamResponse, error) {
	// 1. Derive categories and check the roster
	roster, err := s.buildRoster(req.Club, req.Roster)
	if err != nil {
		return nil, err
	}

	// 2. Reserve the number and insert the team atomically
	var record *secondary.TeamRecord
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.counterRepo.Get(ctx, secondary.TeamNumberCounter)
		if err != nil {
			return err
		}

		record = &secondary.TeamRecord{
			ID:               uuid.NewString(),
			Number:           coreteam.GenerateTeamNumber(current),
			Club:             coreteam.CleanName(req.Club),
			Country:          coreteam.CleanName(req.Country),
			Origin:           string(coreteam.OriginFor(req.Country, s.homeCountry)),
			DistanceKm:       req.DistanceKm,
			BoatName:         req.BoatName,
			BoatRegistration: req.BoatRegistration,
			ContactPhone:     req.ContactPhone,
			Roster:           roster,
			TotalPoints:      0,
		}
		if err := s.teamRepo.Create(ctx, record); err != nil {
			return err
		}

		return s.counterRepo.CompareAndSet(ctx, secondary.TeamNumberCounter, current, current+1)
	})
	if err != nil {
		return nil, err
	}

	// 3. Return response
	team := s.recordToTeam(record)
	return &primary.RegisterTeamResponse{
		TeamID:     record.ID,
		TeamNumber: record.Number,
		Team:       team,
	}, nil
}

// GetTeam retrieves a team by internal ID.
func (s *TeamServiceImpl) GetTeam(ctx context.Context, teamID string) (*primary.Team, error) {
	record, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.recordToTeam(record), nil
}

// GetTeamByNumber retrieves a team by its number. "6" and "006" are equivalent.
func (s *TeamServiceImpl) GetTeamByNumber(ctx context.Context, number string) (*primary.Team, error) {
	if coreteam.ParseTeamNumber(number) < 0 {
		return nil, apperrors.Invalid(fmt.Sprintf("invalid team number %q", number))
	}
	record, err := s.teamRepo.GetByNumber(ctx, coreteam.NormalizeTeamNumber(number))
	if err != nil {
		return nil, err
	}
	return s.recordToTeam(record), nil
}

// ListTeams retrieves all teams ordered by number.
func (s *TeamServiceImpl) ListTeams(ctx context.Context) ([]*primary.Team, error) {
	records, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]*primary.Team, len(records))
	for i, r := range records {
		teams[i] = s.recordToTeam(r)
	}
	return teams, nil
}

// UpdateTeam edits non-scoring fields. Concurrent edits are last write wins.
func (s *TeamServiceImpl) UpdateTeam(ctx context.Context, req primary.UpdateTeamRequest) (*primary.Team, error) {
	var record *secondary.TeamRecord
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.teamRepo.GetByID(ctx, req.TeamID)
		if err != nil {
			return err
		}

		if req.Club != "" {
			record.Club = coreteam.CleanName(req.Club)
		}
		if req.Country != "" {
			record.Country = coreteam.CleanName(req.Country)
			record.Origin = string(coreteam.OriginFor(record.Country, s.homeCountry))
		}
		if req.DistanceKm != nil {
			record.DistanceKm = req.DistanceKm
		}
		if req.BoatName != "" {
			record.BoatName = req.BoatName
		}
		if req.BoatRegistration != "" {
			record.BoatRegistration = req.BoatRegistration
		}
		if req.ContactPhone != "" {
			record.ContactPhone = req.ContactPhone
		}
		if req.Roster != nil {
			roster, err := s.buildRoster(record.Club, req.Roster)
			if err != nil {
				return err
			}
			record.Roster = roster
		}

		return s.teamRepo.Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return s.recordToTeam(record), nil
}

// CurrentTeamNumber returns the last assigned team number.
func (s *TeamServiceImpl) CurrentTeamNumber(ctx context.Context) (int, error) {
	return s.counterRepo.Get(ctx, secondary.TeamNumberCounter)
}

// InitTeamCounter sets the team counter. The counter only moves forward: the
// value may not go below the current counter, nor below any team number still
// in use. A missing counter row may be created at any value.
func (s *TeamServiceImpl) InitTeamCounter(ctx context.Context, value int) error {
	if value < 0 {
		return apperrors.Invalid(fmt.Sprintf("counter value cannot be negative (got %d)", value))
	}

	return s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.counterRepo.Get(ctx, secondary.TeamNumberCounter)
		switch {
		case apperrors.CodeOf(err) == apperrors.CodePreconditionMissing:
		case err != nil:
			return err
		case value < current:
			return apperrors.Invalid(fmt.Sprintf("counter cannot go backwards (current %d, got %d)", current, value))
		}

		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range teams {
			if n := coreteam.ParseTeamNumber(t.Number); n > value {
				return apperrors.Invalid(fmt.Sprintf("counter cannot go below team %s, which is already assigned", t.Number))
			}
		}
		return s.counterRepo.Set(ctx, secondary.TeamNumberCounter, value)
	})
}

// Helper methods

// buildRoster validates a roster and derives each member's category.
func (s *TeamServiceImpl) buildRoster(club string, input []primary.MemberInput) ([]secondary.MemberRecord, error) {
	today := s.now()
	guardRoster := make([]coreteam.RosterMember, len(input))
	roster := make([]secondary.MemberRecord, len(input))

	for i, m := range input {
		sex, err := coreteam.ParseSex(m.Sex)
		if err != nil {
			return nil, apperrors.Invalid(fmt.Sprintf("member %d: %v", i+1, err))
		}
		birth, err := coreteam.ParseBirthDate(m.BirthDate)
		if err != nil {
			return nil, apperrors.Invalid(fmt.Sprintf("member %d: %v", i+1, err))
		}

		age := coreteam.AgeOn(birth, today)
		guardRoster[i] = coreteam.RosterMember{Name: m.Name, Age: age}

		record := secondary.MemberRecord{
			Name:     coreteam.CleanName(m.Name),
			Sex:      string(sex),
			Category: string(coreteam.MemberCategory(age, sex)),
		}
		if !birth.IsZero() {
			record.BirthDate = birth.Format(coreteam.BirthDateLayout)
		}
		roster[i] = record
	}

	if result := coreteam.CanRegisterTeam(coreteam.RegisterTeamContext{Club: club, Roster: guardRoster}); !result.Allowed {
		return nil, result.Error()
	}
	return roster, nil
}

func (s *TeamServiceImpl) recordToTeam(r *secondary.TeamRecord) *primary.Team {
	team := &primary.Team{
		ID:               r.ID,
		Number:           r.Number,
		Club:             r.Club,
		Country:          r.Country,
		Origin:           r.Origin,
		DistanceKm:       r.DistanceKm,
		BoatName:         r.BoatName,
		BoatRegistration: r.BoatRegistration,
		ContactPhone:     r.ContactPhone,
		TotalPoints:      r.TotalPoints,
	}
	if !r.CreatedAt.IsZero() {
		team.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		team.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	for _, m := range r.Roster {
		team.Roster = append(team.Roster, primary.Member{
			Name:      m.Name,
			BirthDate: m.BirthDate,
			Sex:       m.Sex,
			Category:  m.Category,
		})
	}
	return team
}

// Ensure TeamServiceImpl implements the interface
var _ primary.TeamService = (*TeamServiceImpl)(nil)
