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

// CatchRepository implements secondary.CatchRepository with SQLite.
type CatchRepository struct {
	db *sql.DB
}

// NewCatchRepository creates a new SQLite catch repository.
func NewCatchRepository(db *sql.DB) *CatchRepository {
	return &CatchRepository{db: db}
}

const catchColumns = "id, team_id, member, species_id, size_cm, points, caught_at"

// caughtAtLayout matches the schema default strftime('%Y-%m-%d %H:%M:%f'), so
// explicit and store-assigned timestamps sort together as text.
const caughtAtLayout = "2006-01-02 15:04:05.000"

// Create persists a new catch.
// The catch record must have ID pre-populated by the service layer.
func (r *CatchRepository) Create(ctx context.Context, c *secondary.CatchRecord) error {
	if c.ID == "" {
		return fmt.Errorf("catch ID must be pre-populated by service layer")
	}

	q := conn(ctx, r.db)
	var err error
	if c.CaughtAt.IsZero() {
		_, err = q.ExecContext(ctx,
			"INSERT INTO catches (id, team_id, member, species_id, size_cm, points) VALUES (?, ?, ?, ?, ?, ?)",
			c.ID, c.TeamID, c.Member, c.SpeciesID, c.SizeCm, c.Points,
		)
	} else {
		_, err = q.ExecContext(ctx,
			"INSERT INTO catches (id, team_id, member, species_id, size_cm, points, caught_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			c.ID, c.TeamID, c.Member, c.SpeciesID, c.SizeCm, c.Points, c.CaughtAt.UTC().Format(caughtAtLayout),
		)
	}
	if err != nil {
		return storeError("failed to create catch", err)
	}

	if c.CaughtAt.IsZero() {
		if err := q.QueryRowContext(ctx, "SELECT caught_at FROM catches WHERE id = ?", c.ID).Scan(&c.CaughtAt); err != nil {
			return storeError("failed to read catch timestamp", err)
		}
	}
	return nil
}

// GetByID retrieves a catch by its ID.
func (r *CatchRepository) GetByID(ctx context.Context, id string) (*secondary.CatchRecord, error) {
	record, err := scanCatch(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+catchColumns+" FROM catches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.CatchNotFound(id)
	}
	if err != nil {
		return nil, storeError("failed to get catch", err)
	}
	return record, nil
}

// List retrieves catches matching the given filters, newest first.
func (r *CatchRepository) List(ctx context.Context, filters secondary.CatchFilters) ([]*secondary.CatchRecord, error) {
	query := "SELECT " + catchColumns + " FROM catches WHERE 1=1"
	args := []any{}

	if filters.TeamID != "" {
		query += " AND team_id = ?"
		args = append(args, filters.TeamID)
	}
	if filters.SpeciesID != "" {
		query += " AND species_id = ?"
		args = append(args, filters.SpeciesID)
	}

	query += " ORDER BY caught_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	return r.query(ctx, "failed to list catches", query, args...)
}

// CountBySpecies counts a team's active catches of one species.
func (r *CatchRepository) CountBySpecies(ctx context.Context, teamID, speciesID string) (int, error) {
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM catches WHERE team_id = ? AND species_id = ?",
		teamID, speciesID,
	).Scan(&count)
	if err != nil {
		return 0, storeError("failed to count catches", err)
	}
	return count, nil
}

// SumPoints sums the points of a team's active catches.
func (r *CatchRepository) SumPoints(ctx context.Context, teamID string) (int, error) {
	var sum int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(SUM(points), 0) FROM catches WHERE team_id = ?",
		teamID,
	).Scan(&sum)
	if err != nil {
		return 0, storeError("failed to sum catch points", err)
	}
	return sum, nil
}

// Delete removes a catch.
func (r *CatchRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM catches WHERE id = ?", id)
	if err != nil {
		return storeError("failed to delete catch", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.CatchNotFound(id)
	}

	return nil
}

// DeleteByTeam removes every catch of a team and returns how many were removed.
func (r *CatchRepository) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM catches WHERE team_id = ?", teamID)
	if err != nil {
		return 0, storeError("failed to delete team catches", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, storeError("failed to get rows affected", err)
	}
	return int(rowsAffected), nil
}

// ListOrphans returns catches whose team no longer exists.
func (r *CatchRepository) ListOrphans(ctx context.Context) ([]*secondary.CatchRecord, error) {
	return r.query(ctx, "failed to list orphan catches",
		"SELECT "+catchColumns+" FROM catches WHERE team_id NOT IN (SELECT id FROM teams) ORDER BY caught_at DESC, rowid DESC")
}

func (r *CatchRepository) query(ctx context.Context, failure, query string, args ...any) ([]*secondary.CatchRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(failure, err)
	}
	defer rows.Close()

	var catches []*secondary.CatchRecord
	for rows.Next() {
		record, err := scanCatch(rows)
		if err != nil {
			return nil, storeError("failed to scan catch", err)
		}
		catches = append(catches, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(failure, err)
	}
	return catches, nil
}

func scanCatch(row rowScanner) (*secondary.CatchRecord, error) {
	var caughtAt time.Time
	record := &secondary.CatchRecord{}
	err := row.Scan(&record.ID, &record.TeamID, &record.Member, &record.SpeciesID, &record.SizeCm, &record.Points, &caughtAt)
	if err != nil {
		return nil, err
	}
	record.CaughtAt = caughtAt
	return record, nil
}

// Ensure CatchRepository implements the interface
var _ secondary.CatchRepository = (*CatchRepository)(nil)
