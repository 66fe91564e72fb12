package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

// TeamRepository implements secondary.TeamRepository with SQLite.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new SQLite team repository.
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = "id, number, club, country, origin, distance_km, boat_name, boat_registration, contact_phone, total_points, version, created_at, updated_at"

// Create persists a new team and its roster.
// The team record must have ID and Number pre-populated by the service layer.
func (r *TeamRepository) Create(ctx context.Context, team *secondary.TeamRecord) error {
	if team.ID == "" {
		return fmt.Errorf("team ID must be pre-populated by service layer")
	}
	if team.Number == "" {
		return fmt.Errorf("team Number must be pre-populated by service layer")
	}

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO teams (id, number, club, country, origin, distance_km, boat_name, boat_registration, contact_phone, total_points, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		team.ID, team.Number, team.Club, nullString(team.Country), originOrDefault(team.Origin),
		nullFloat(team.DistanceKm), nullString(team.BoatName), nullString(team.BoatRegistration),
		nullString(team.ContactPhone), team.TotalPoints,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.WithMetadata(apperrors.CodeInvalidInput,
				fmt.Sprintf("team number %s is already taken; the team counter is behind the existing teams", team.Number),
				map[string]string{"team_number": team.Number})
		}
		return storeError("failed to create team", err)
	}
	team.Version = 1

	return r.writeRoster(ctx, q, team.ID, team.Roster)
}

// GetByID retrieves a team by its internal ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*secondary.TeamRecord, error) {
	q := conn(ctx, r.db)
	record, err := scanTeam(q.QueryRowContext(ctx, "SELECT "+teamColumns+" FROM teams WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.TeamNotFound(id)
	}
	if err != nil {
		return nil, storeError("failed to get team", err)
	}

	if record.Roster, err = r.loadRoster(ctx, q, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByNumber retrieves a team by its team number.
func (r *TeamRepository) GetByNumber(ctx context.Context, number string) (*secondary.TeamRecord, error) {
	q := conn(ctx, r.db)
	record, err := scanTeam(q.QueryRowContext(ctx, "SELECT "+teamColumns+" FROM teams WHERE number = ?", number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WithMetadata(apperrors.CodeTeamNotFound,
			"team number "+number+" not found", map[string]string{"team_number": number})
	}
	if err != nil {
		return nil, storeError("failed to get team", err)
	}

	if record.Roster, err = r.loadRoster(ctx, q, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves all teams ordered by number.
func (r *TeamRepository) List(ctx context.Context) ([]*secondary.TeamRecord, error) {
	q := conn(ctx, r.db)
	// Numbers are zero-padded, so ordering by length first keeps "1000" after "999".
	rows, err := q.QueryContext(ctx, "SELECT "+teamColumns+" FROM teams ORDER BY length(number), number")
	if err != nil {
		return nil, storeError("failed to list teams", err)
	}

	var teams []*secondary.TeamRecord
	for rows.Next() {
		record, err := scanTeam(rows)
		if err != nil {
			rows.Close()
			return nil, storeError("failed to scan team", err)
		}
		teams = append(teams, record)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, storeError("failed to list teams", err)
	}

	// Rosters are loaded after the team cursor is closed; inside a
	// transaction there is only one connection to read from.
	for _, team := range teams {
		if team.Roster, err = r.loadRoster(ctx, q, team.ID); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// Update writes the non-scoring fields and replaces the roster.
// Number and TotalPoints are never touched; the version is bumped.
func (r *TeamRepository) Update(ctx context.Context, team *secondary.TeamRecord) error {
	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx,
		`UPDATE teams SET club = ?, country = ?, origin = ?, distance_km = ?, boat_name = ?, boat_registration = ?,
		 contact_phone = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		team.Club, nullString(team.Country), originOrDefault(team.Origin), nullFloat(team.DistanceKm),
		nullString(team.BoatName), nullString(team.BoatRegistration), nullString(team.ContactPhone), team.ID,
	)
	if err != nil {
		return storeError("failed to update team", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.TeamNotFound(team.ID)
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM team_members WHERE team_id = ?", team.ID); err != nil {
		return storeError("failed to clear roster", err)
	}
	return r.writeRoster(ctx, q, team.ID, team.Roster)
}

// UpdateTotalPoints writes a new total if the row is still at expectedVersion.
func (r *TeamRepository) UpdateTotalPoints(ctx context.Context, id string, totalPoints int, expectedVersion int64) error {
	if totalPoints < 0 {
		return apperrors.Invalid(fmt.Sprintf("total points cannot be negative (got %d)", totalPoints))
	}

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx,
		"UPDATE teams SET total_points = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND version = ?",
		totalPoints, id, expectedVersion,
	)
	if err != nil {
		return storeError("failed to update team total", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	// Distinguish a vanished team from a moved version.
	var exists int
	err = q.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return storeError("failed to check team", err)
	}
	if exists == 0 {
		return apperrors.TeamNotFound(id)
	}
	return apperrors.WithMetadata(apperrors.CodeTransactionConflict,
		fmt.Sprintf("team %s changed since version %d", id, expectedVersion),
		map[string]string{"team_id": id})
}

// Delete removes a team row. Roster rows cascade.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return storeError("failed to delete team", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.TeamNotFound(id)
	}

	return nil
}

func (r *TeamRepository) writeRoster(ctx context.Context, q querier, teamID string, roster []secondary.MemberRecord) error {
	for i, m := range roster {
		_, err := q.ExecContext(ctx,
			"INSERT INTO team_members (team_id, position, name, birth_date, sex, category) VALUES (?, ?, ?, ?, ?, ?)",
			teamID, i, m.Name, nullString(m.BirthDate), m.Sex, m.Category,
		)
		if err != nil {
			return storeError("failed to write roster", err)
		}
	}
	return nil
}

func (r *TeamRepository) loadRoster(ctx context.Context, q querier, teamID string) ([]secondary.MemberRecord, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT name, birth_date, sex, category FROM team_members WHERE team_id = ? ORDER BY position",
		teamID,
	)
	if err != nil {
		return nil, storeError("failed to load roster", err)
	}
	defer rows.Close()

	var roster []secondary.MemberRecord
	for rows.Next() {
		var (
			m         secondary.MemberRecord
			birthDate sql.NullString
		)
		if err := rows.Scan(&m.Name, &birthDate, &m.Sex, &m.Category); err != nil {
			return nil, storeError("failed to scan member", err)
		}
		m.BirthDate = birthDate.String
		roster = append(roster, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to load roster", err)
	}
	return roster, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*secondary.TeamRecord, error) {
	var (
		country, boatName, boatReg, phone sql.NullString
		distance                          sql.NullFloat64
		createdAt, updatedAt              time.Time
	)

	record := &secondary.TeamRecord{}
	err := row.Scan(&record.ID, &record.Number, &record.Club, &country, &record.Origin, &distance,
		&boatName, &boatReg, &phone, &record.TotalPoints, &record.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Country = country.String
	record.BoatName = boatName.String
	record.BoatRegistration = boatReg.String
	record.ContactPhone = phone.String
	if distance.Valid {
		d := distance.Float64
		record.DistanceKm = &d
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return record, nil
}

func originOrDefault(origin string) string {
	if origin == "" {
		return "national"
	}
	return origin
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// Ensure TeamRepository implements the interface
var _ secondary.TeamRepository = (*TeamRepository)(nil)
