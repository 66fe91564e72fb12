package cli

import (
	"context"

	"github.com/fatih/color"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// ============================================================================
// Mock Services
// ============================================================================

type mockTeamService struct {
	registerFn     func(ctx context.Context, req primary.RegisterTeamRequest) (*primary.RegisterTeamResponse, error)
	listFn         func(ctx context.Context) ([]*primary.Team, error)
	teams          map[string]*primary.Team // by number
	updateFn       func(ctx context.Context, req primary.UpdateTeamRequest) (*primary.Team, error)
	counter        int
	counterErr     error
	lastRegister   primary.RegisterTeamRequest
	lastCounterSet int
}

func (m *mockTeamService) RegisterTeam(ctx context.Context, req primary.RegisterTeamRequest) (*primary.RegisterTeamResponse, error) {
	m.lastRegister = req
	return m.registerFn(ctx, req)
}

func (m *mockTeamService) GetTeam(ctx context.Context, teamID string) (*primary.Team, error) {
	for _, t := range m.teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return nil, apperrors.TeamNotFound(teamID)
}

func (m *mockTeamService) GetTeamByNumber(ctx context.Context, number string) (*primary.Team, error) {
	if t, ok := m.teams[number]; ok {
		return t, nil
	}
	return nil, apperrors.New(apperrors.CodeTeamNotFound, "team number "+number+" not found")
}

func (m *mockTeamService) ListTeams(ctx context.Context) ([]*primary.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	var teams []*primary.Team
	for _, t := range m.teams {
		teams = append(teams, t)
	}
	return teams, nil
}

func (m *mockTeamService) UpdateTeam(ctx context.Context, req primary.UpdateTeamRequest) (*primary.Team, error) {
	return m.updateFn(ctx, req)
}

func (m *mockTeamService) CurrentTeamNumber(ctx context.Context) (int, error) {
	return m.counter, m.counterErr
}

func (m *mockTeamService) InitTeamCounter(ctx context.Context, value int) error {
	if m.counterErr != nil {
		return m.counterErr
	}
	m.lastCounterSet = value
	m.counter = value
	return nil
}

type mockLedgerService struct {
	recordFn     func(ctx context.Context, data primary.CatchData) (*primary.RecordCatchResponse, error)
	removeFn     func(ctx context.Context, catchID string) (*primary.RemoveCatchResponse, error)
	deleteTeamFn func(ctx context.Context, teamID string) (*primary.DeleteTeamResponse, error)
	report       *primary.LedgerReport
	reconciled   []string
	removed      []string
	lastRecord   primary.CatchData
}

func (m *mockLedgerService) RecordCatch(ctx context.Context, data primary.CatchData) (*primary.RecordCatchResponse, error) {
	m.lastRecord = data
	return m.recordFn(ctx, data)
}

func (m *mockLedgerService) RemoveCatch(ctx context.Context, catchID string) (*primary.RemoveCatchResponse, error) {
	m.removed = append(m.removed, catchID)
	if m.removeFn != nil {
		return m.removeFn(ctx, catchID)
	}
	return &primary.RemoveCatchResponse{Catch: &primary.Catch{ID: catchID}, Orphaned: true}, nil
}

func (m *mockLedgerService) DeleteTeam(ctx context.Context, teamID string) (*primary.DeleteTeamResponse, error) {
	return m.deleteTeamFn(ctx, teamID)
}

func (m *mockLedgerService) ReconcileTeam(ctx context.Context, teamID string) (*primary.ReconcileResult, error) {
	m.reconciled = append(m.reconciled, teamID)
	for _, d := range m.report.Discrepancies {
		if d.TeamID == teamID {
			return &primary.ReconcileResult{
				TeamID: teamID, TeamNumber: d.TeamNumber,
				Before: d.StoredTotal, After: d.CatchTotal, Changed: true,
			}, nil
		}
	}
	return &primary.ReconcileResult{TeamID: teamID}, nil
}

func (m *mockLedgerService) VerifyLedger(ctx context.Context) (*primary.LedgerReport, error) {
	return m.report, nil
}

type mockCatchService struct {
	registerFn   func(ctx context.Context, req primary.RegisterCatchRequest) (*primary.RecordCatchResponse, error)
	catches      []*primary.Catch
	lastRegister primary.RegisterCatchRequest
	lastFilters  primary.CatchFilters
}

func (m *mockCatchService) RegisterCatch(ctx context.Context, req primary.RegisterCatchRequest) (*primary.RecordCatchResponse, error) {
	m.lastRegister = req
	return m.registerFn(ctx, req)
}

func (m *mockCatchService) ListCatches(ctx context.Context, filters primary.CatchFilters) ([]*primary.Catch, error) {
	m.lastFilters = filters
	return m.catches, nil
}

func (m *mockCatchService) GetCatch(ctx context.Context, catchID string) (*primary.Catch, error) {
	for _, c := range m.catches {
		if c.ID == catchID {
			return c, nil
		}
	}
	return nil, apperrors.CatchNotFound(catchID)
}

type mockSpeciesService struct {
	species  []*primary.Species
	importFn func(ctx context.Context, path string) (*primary.ImportCatalogResponse, error)
	deleted  string
}

func (m *mockSpeciesService) SaveSpecies(ctx context.Context, species primary.Species) (*primary.Species, error) {
	return &species, nil
}

func (m *mockSpeciesService) GetSpecies(ctx context.Context, speciesID string) (*primary.Species, error) {
	for _, s := range m.species {
		if s.ID == speciesID {
			return s, nil
		}
	}
	return nil, apperrors.SpeciesNotFound(speciesID)
}

func (m *mockSpeciesService) ListSpecies(ctx context.Context) ([]*primary.Species, error) {
	return m.species, nil
}

func (m *mockSpeciesService) DeleteSpecies(ctx context.Context, speciesID string) error {
	if _, err := m.GetSpecies(ctx, speciesID); err != nil {
		return err
	}
	m.deleted = speciesID
	return nil
}

func (m *mockSpeciesService) ImportCatalog(ctx context.Context, path string) (*primary.ImportCatalogResponse, error) {
	return m.importFn(ctx, path)
}

type mockLeaderboardService struct {
	teams        []*primary.TeamStanding
	members      []*primary.MemberStanding
	lastCategory string
}

func (m *mockLeaderboardService) TeamStandings(ctx context.Context) ([]*primary.TeamStanding, error) {
	return m.teams, nil
}

func (m *mockLeaderboardService) MemberStandings(ctx context.Context, category string) ([]*primary.MemberStanding, error) {
	m.lastCategory = category
	return m.members, nil
}

var (
	_ primary.TeamService        = (*mockTeamService)(nil)
	_ primary.LedgerService      = (*mockLedgerService)(nil)
	_ primary.CatchService       = (*mockCatchService)(nil)
	_ primary.SpeciesService     = (*mockSpeciesService)(nil)
	_ primary.LeaderboardService = (*mockLeaderboardService)(nil)
)
