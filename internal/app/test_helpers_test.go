package app

import (
	"context"
	"sort"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTransactor runs fn directly. It does not roll back; tests that need
// atomicity run against SQLite in the adapter package.
type mockTransactor struct {
	calls int
	err   error
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

// mockTeamRepository implements secondary.TeamRepository for testing.
type mockTeamRepository struct {
	teams     map[string]*secondary.TeamRecord
	createErr error
	updateErr error
	listErr   error
}

func newMockTeamRepository() *mockTeamRepository {
	return &mockTeamRepository{teams: make(map[string]*secondary.TeamRecord)}
}

func (m *mockTeamRepository) add(team *secondary.TeamRecord) *secondary.TeamRecord {
	if team.Version == 0 {
		team.Version = 1
	}
	m.teams[team.ID] = team
	return team
}

func (m *mockTeamRepository) Create(ctx context.Context, team *secondary.TeamRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	team.Version = 1
	copied := *team
	m.teams[team.ID] = &copied
	return nil
}

func (m *mockTeamRepository) GetByID(ctx context.Context, id string) (*secondary.TeamRecord, error) {
	if team, ok := m.teams[id]; ok {
		copied := *team
		return &copied, nil
	}
	return nil, apperrors.TeamNotFound(id)
}

func (m *mockTeamRepository) GetByNumber(ctx context.Context, number string) (*secondary.TeamRecord, error) {
	for _, team := range m.teams {
		if team.Number == number {
			copied := *team
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeTeamNotFound, "team number "+number+" not found")
}

func (m *mockTeamRepository) List(ctx context.Context) ([]*secondary.TeamRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TeamRecord
	for _, team := range m.teams {
		copied := *team
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockTeamRepository) Update(ctx context.Context, team *secondary.TeamRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.teams[team.ID]
	if !ok {
		return apperrors.TeamNotFound(team.ID)
	}
	copied := *team
	copied.TotalPoints = stored.TotalPoints
	copied.Version = stored.Version + 1
	m.teams[team.ID] = &copied
	return nil
}

func (m *mockTeamRepository) UpdateTotalPoints(ctx context.Context, id string, totalPoints int, expectedVersion int64) error {
	stored, ok := m.teams[id]
	if !ok {
		return apperrors.TeamNotFound(id)
	}
	if stored.Version != expectedVersion {
		return apperrors.New(apperrors.CodeTransactionConflict, "version moved")
	}
	stored.TotalPoints = totalPoints
	stored.Version++
	return nil
}

func (m *mockTeamRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.teams[id]; !ok {
		return apperrors.TeamNotFound(id)
	}
	delete(m.teams, id)
	return nil
}

// mockCatchRepository implements secondary.CatchRepository for testing.
type mockCatchRepository struct {
	catches   map[string]*secondary.CatchRecord
	order     []string
	createErr error
}

func newMockCatchRepository() *mockCatchRepository {
	return &mockCatchRepository{catches: make(map[string]*secondary.CatchRecord)}
}

func (m *mockCatchRepository) Create(ctx context.Context, c *secondary.CatchRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *c
	m.catches[c.ID] = &copied
	m.order = append(m.order, c.ID)
	return nil
}

func (m *mockCatchRepository) GetByID(ctx context.Context, id string) (*secondary.CatchRecord, error) {
	if c, ok := m.catches[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.CatchNotFound(id)
}

func (m *mockCatchRepository) List(ctx context.Context, filters secondary.CatchFilters) ([]*secondary.CatchRecord, error) {
	var result []*secondary.CatchRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		c, ok := m.catches[m.order[i]]
		if !ok {
			continue
		}
		if filters.TeamID != "" && c.TeamID != filters.TeamID {
			continue
		}
		if filters.SpeciesID != "" && c.SpeciesID != filters.SpeciesID {
			continue
		}
		result = append(result, c)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockCatchRepository) CountBySpecies(ctx context.Context, teamID, speciesID string) (int, error) {
	count := 0
	for _, c := range m.catches {
		if c.TeamID == teamID && c.SpeciesID == speciesID {
			count++
		}
	}
	return count, nil
}

func (m *mockCatchRepository) SumPoints(ctx context.Context, teamID string) (int, error) {
	sum := 0
	for _, c := range m.catches {
		if c.TeamID == teamID {
			sum += c.Points
		}
	}
	return sum, nil
}

func (m *mockCatchRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.catches[id]; !ok {
		return apperrors.CatchNotFound(id)
	}
	delete(m.catches, id)
	return nil
}

func (m *mockCatchRepository) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	removed := 0
	for id, c := range m.catches {
		if c.TeamID == teamID {
			delete(m.catches, id)
			removed++
		}
	}
	return removed, nil
}

// ListOrphans needs the team table; tests set orphans explicitly.
func (m *mockCatchRepository) ListOrphans(ctx context.Context) ([]*secondary.CatchRecord, error) {
	return nil, nil
}

// mockCounterRepository implements secondary.CounterRepository for testing.
type mockCounterRepository struct {
	values map[string]int
	casErr error
}

func newMockCounterRepository() *mockCounterRepository {
	return &mockCounterRepository{values: make(map[string]int)}
}

func (m *mockCounterRepository) Get(ctx context.Context, name string) (int, error) {
	v, ok := m.values[name]
	if !ok {
		return 0, apperrors.New(apperrors.CodePreconditionMissing, "counter "+name+" missing")
	}
	return v, nil
}

func (m *mockCounterRepository) CompareAndSet(ctx context.Context, name string, old, new int) error {
	if m.casErr != nil {
		return m.casErr
	}
	v, ok := m.values[name]
	if !ok {
		return apperrors.New(apperrors.CodePreconditionMissing, "counter "+name+" missing")
	}
	if v != old {
		return apperrors.New(apperrors.CodeTransactionConflict, "counter moved")
	}
	m.values[name] = new
	return nil
}

func (m *mockCounterRepository) Set(ctx context.Context, name string, value int) error {
	m.values[name] = value
	return nil
}

// mockSpeciesRepository implements secondary.SpeciesRepository for testing.
type mockSpeciesRepository struct {
	species map[string]*secondary.SpeciesRecord
	saveErr error
	saved   int
}

func newMockSpeciesRepository() *mockSpeciesRepository {
	return &mockSpeciesRepository{species: make(map[string]*secondary.SpeciesRecord)}
}

func (m *mockSpeciesRepository) Save(ctx context.Context, species *secondary.SpeciesRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *species
	m.species[species.ID] = &copied
	m.saved++
	return nil
}

func (m *mockSpeciesRepository) GetByID(ctx context.Context, id string) (*secondary.SpeciesRecord, error) {
	if s, ok := m.species[id]; ok {
		return s, nil
	}
	return nil, apperrors.SpeciesNotFound(id)
}

func (m *mockSpeciesRepository) List(ctx context.Context) ([]*secondary.SpeciesRecord, error) {
	var result []*secondary.SpeciesRecord
	for _, s := range m.species {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSpeciesRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.species[id]; !ok {
		return apperrors.SpeciesNotFound(id)
	}
	delete(m.species, id)
	return nil
}

// mockCatalogReader implements secondary.CatalogReader for testing.
type mockCatalogReader struct {
	records []*secondary.SpeciesRecord
	err     error
}

func (m *mockCatalogReader) ReadCatalog(ctx context.Context, path string) ([]*secondary.SpeciesRecord, error) {
	return m.records, m.err
}

var (
	_ secondary.Transactor        = (*mockTransactor)(nil)
	_ secondary.TeamRepository    = (*mockTeamRepository)(nil)
	_ secondary.CatchRepository   = (*mockCatchRepository)(nil)
	_ secondary.CounterRepository = (*mockCounterRepository)(nil)
	_ secondary.SpeciesRepository = (*mockSpeciesRepository)(nil)
	_ secondary.CatalogReader     = (*mockCatalogReader)(nil)
)
