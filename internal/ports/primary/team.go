// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI and any other front end call into.
package primary

import "context"

// TeamService defines the primary port for team operations.
type TeamService interface {
	// RegisterTeam reserves the next team number and inserts the team in one
	// atomic unit. Fails with PRECONDITION_MISSING when the counter is absent.
	RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*RegisterTeamResponse, error)

	// GetTeam retrieves a team by internal ID.
	GetTeam(ctx context.Context, teamID string) (*Team, error)

	// GetTeamByNumber retrieves a team by team number ("6" and "006" both work).
	GetTeamByNumber(ctx context.Context, number string) (*Team, error)

	// ListTeams retrieves all teams ordered by number.
	ListTeams(ctx context.Context) ([]*Team, error)

	// UpdateTeam edits non-scoring fields (last write wins).
	UpdateTeam(ctx context.Context, req UpdateTeamRequest) (*Team, error)

	// CurrentTeamNumber returns the counter value (last assigned number).
	CurrentTeamNumber(ctx context.Context) (int, error)

	// InitTeamCounter sets the counter. Operator use only.
	InitTeamCounter(ctx context.Context, value int) error
}

// RegisterTeamRequest contains parameters for registering a team.
type RegisterTeamRequest struct {
	Club             string
	Country          string
	DistanceKm       *float64
	BoatName         string
	BoatRegistration string
	ContactPhone     string
	Roster           []MemberInput // first member is the helmsman
}

// MemberInput is a roster member as typed by the operator.
type MemberInput struct {
	Name      string
	BirthDate string // YYYY-MM-DD, optional
	Sex       string // M, F or empty
}

// RegisterTeamResponse contains the result of registering a team.
type RegisterTeamResponse struct {
	TeamID     string
	TeamNumber string
	Team       *Team
}

// UpdateTeamRequest contains parameters for editing a team.
// Empty strings and nil pointers leave a field unchanged; a non-nil Roster
// replaces the whole roster.
type UpdateTeamRequest struct {
	TeamID           string
	Club             string
	Country          string
	DistanceKm       *float64
	BoatName         string
	BoatRegistration string
	ContactPhone     string
	Roster           []MemberInput
}

// Team represents a team at the port boundary.
type Team struct {
	ID               string
	Number           string
	Club             string
	Country          string
	Origin           string
	DistanceKm       *float64
	BoatName         string
	BoatRegistration string
	ContactPhone     string
	Roster           []Member
	TotalPoints      int
	CreatedAt        string
	UpdatedAt        string
}

// Member is a roster member at the port boundary.
type Member struct {
	Name      string
	BirthDate string
	Sex       string
	Category  string
}
