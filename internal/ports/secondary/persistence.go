// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// Transactor runs a unit of work atomically.
//
// Every repository call made with the context passed to fn joins the same
// transaction. Either all writes inside fn commit or none do. Conflicting
// concurrent writers are detected and fn is re-run from scratch a bounded
// number of times; fn must therefore be free of side effects other than
// repository calls. Nested calls join the outer transaction and do not retry
// on their own.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TeamRepository defines the secondary port for team persistence.
type TeamRepository interface {
	// Create persists a new team. Number must be unique.
	Create(ctx context.Context, team *TeamRecord) error

	// GetByID retrieves a team by its internal ID.
	GetByID(ctx context.Context, id string) (*TeamRecord, error)

	// GetByNumber retrieves a team by its team number ("006").
	GetByNumber(ctx context.Context, number string) (*TeamRecord, error)

	// List retrieves all teams ordered by number.
	List(ctx context.Context) ([]*TeamRecord, error)

	// Update writes the non-scoring fields (club, roster, boat...).
	// Number and TotalPoints are never touched.
	Update(ctx context.Context, team *TeamRecord) error

	// UpdateTotalPoints writes a new total if the row is still at expectedVersion.
	// Returns a TRANSACTION_CONFLICT error when the version moved.
	UpdateTotalPoints(ctx context.Context, id string, totalPoints int, expectedVersion int64) error

	// Delete removes a team row.
	Delete(ctx context.Context, id string) error
}

// TeamRecord represents a team as stored in persistence.
type TeamRecord struct {
	ID               string
	Number           string
	Club             string
	Country          string
	Origin           string
	DistanceKm       *float64
	BoatName         string
	BoatRegistration string
	ContactPhone     string
	Roster           []MemberRecord
	TotalPoints      int
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MemberRecord is one roster entry. Position 0 is the helmsman.
type MemberRecord struct {
	Name      string
	BirthDate string
	Sex       string
	Category  string
}

// RosterNames returns the member names in roster order.
func (t *TeamRecord) RosterNames() []string {
	names := make([]string, len(t.Roster))
	for i, m := range t.Roster {
		names[i] = m.Name
	}
	return names
}

// CatchRepository defines the secondary port for catch persistence.
type CatchRepository interface {
	// Create persists a new catch. CaughtAt is assigned by the store when zero.
	Create(ctx context.Context, c *CatchRecord) error

	// GetByID retrieves a catch by its ID.
	GetByID(ctx context.Context, id string) (*CatchRecord, error)

	// List retrieves catches matching the given filters, newest first.
	List(ctx context.Context, filters CatchFilters) ([]*CatchRecord, error)

	// CountBySpecies counts a team's active catches of one species.
	CountBySpecies(ctx context.Context, teamID, speciesID string) (int, error)

	// SumPoints sums the points of a team's active catches.
	SumPoints(ctx context.Context, teamID string) (int, error)

	// Delete removes a catch.
	Delete(ctx context.Context, id string) error

	// DeleteByTeam removes every catch of a team and returns how many were removed.
	DeleteByTeam(ctx context.Context, teamID string) (int, error)

	// ListOrphans returns catches whose team no longer exists.
	ListOrphans(ctx context.Context) ([]*CatchRecord, error)
}

// CatchRecord represents a catch as stored in persistence.
type CatchRecord struct {
	ID        string
	TeamID    string
	Member    string
	SpeciesID string
	SizeCm    float64
	Points    int
	CaughtAt  time.Time
}

// CatchFilters contains filter options for querying catches.
type CatchFilters struct {
	TeamID    string
	SpeciesID string
	Limit     int
}

// CounterRepository defines the secondary port for named monotonic counters.
type CounterRepository interface {
	// Get returns the current value. Returns a PRECONDITION_MISSING error when
	// the counter has never been initialised.
	Get(ctx context.Context, name string) (int, error)

	// CompareAndSet moves the counter from old to new. Returns a
	// TRANSACTION_CONFLICT error when the stored value is no longer old, and
	// PRECONDITION_MISSING when the counter does not exist.
	CompareAndSet(ctx context.Context, name string, old, new int) error

	// Set initialises or overwrites a counter. Operator use only.
	Set(ctx context.Context, name string, value int) error
}

// TeamNumberCounter is the counter that tracks the last assigned team number.
const TeamNumberCounter = "team_number"

// SpeciesRepository defines the secondary port for the species catalog.
type SpeciesRepository interface {
	// Save creates or replaces a species and its piece rules.
	Save(ctx context.Context, species *SpeciesRecord) error

	// GetByID retrieves a species by its ID.
	GetByID(ctx context.Context, id string) (*SpeciesRecord, error)

	// List retrieves all species ordered by name.
	List(ctx context.Context) ([]*SpeciesRecord, error)

	// Delete removes a species.
	Delete(ctx context.Context, id string) error
}

// SpeciesRecord represents a species as stored in persistence.
type SpeciesRecord struct {
	ID       string
	Name     string
	Category string
	Rules    []PieceRuleRecord
}

// PieceRuleRecord is the scoring rule for one piece index.
type PieceRuleRecord struct {
	Points    int
	MinSizeCm float64
	Mandatory bool
}

// CatalogReader loads a species catalog from outside the store.
type CatalogReader interface {
	// ReadCatalog parses the catalog at path.
	ReadCatalog(ctx context.Context, path string) ([]*SpeciesRecord, error)
}
