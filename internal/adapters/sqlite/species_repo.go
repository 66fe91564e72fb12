package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

// SpeciesRepository implements secondary.SpeciesRepository with SQLite.
type SpeciesRepository struct {
	db *sql.DB
}

// NewSpeciesRepository creates a new SQLite species repository.
func NewSpeciesRepository(db *sql.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// Save creates or replaces a species and its piece rules.
func (r *SpeciesRepository) Save(ctx context.Context, species *secondary.SpeciesRecord) error {
	if species.ID == "" {
		return fmt.Errorf("species ID must be pre-populated by service layer")
	}

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO species (id, name, category) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, category = excluded.category, updated_at = CURRENT_TIMESTAMP`,
		species.ID, species.Name, categoryOrDefault(species.Category),
	)
	if err != nil {
		return storeError("failed to save species", err)
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM species_rules WHERE species_id = ?", species.ID); err != nil {
		return storeError("failed to clear species rules", err)
	}
	for i, rule := range species.Rules {
		_, err := q.ExecContext(ctx,
			"INSERT INTO species_rules (species_id, piece_index, points, min_size_cm, mandatory) VALUES (?, ?, ?, ?, ?)",
			species.ID, i, rule.Points, rule.MinSizeCm, rule.Mandatory,
		)
		if err != nil {
			return storeError("failed to save species rule", err)
		}
	}
	return nil
}

// GetByID retrieves a species by its ID.
func (r *SpeciesRepository) GetByID(ctx context.Context, id string) (*secondary.SpeciesRecord, error) {
	q := conn(ctx, r.db)
	record := &secondary.SpeciesRecord{}
	err := q.QueryRowContext(ctx, "SELECT id, name, category FROM species WHERE id = ?", id).
		Scan(&record.ID, &record.Name, &record.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.SpeciesNotFound(id)
	}
	if err != nil {
		return nil, storeError("failed to get species", err)
	}

	if record.Rules, err = r.loadRules(ctx, q, id); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves all species ordered by name.
func (r *SpeciesRepository) List(ctx context.Context) ([]*secondary.SpeciesRecord, error) {
	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, "SELECT id, name, category FROM species ORDER BY name, id")
	if err != nil {
		return nil, storeError("failed to list species", err)
	}

	var list []*secondary.SpeciesRecord
	for rows.Next() {
		record := &secondary.SpeciesRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Category); err != nil {
			rows.Close()
			return nil, storeError("failed to scan species", err)
		}
		list = append(list, record)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, storeError("failed to list species", err)
	}

	for _, s := range list {
		if s.Rules, err = r.loadRules(ctx, q, s.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete removes a species. Its rules cascade.
func (r *SpeciesRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM species WHERE id = ?", id)
	if err != nil {
		return storeError("failed to delete species", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.SpeciesNotFound(id)
	}

	return nil
}

func (r *SpeciesRepository) loadRules(ctx context.Context, q querier, speciesID string) ([]secondary.PieceRuleRecord, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT points, min_size_cm, mandatory FROM species_rules WHERE species_id = ? ORDER BY piece_index",
		speciesID,
	)
	if err != nil {
		return nil, storeError("failed to load species rules", err)
	}
	defer rows.Close()

	var rules []secondary.PieceRuleRecord
	for rows.Next() {
		var rule secondary.PieceRuleRecord
		if err := rows.Scan(&rule.Points, &rule.MinSizeCm, &rule.Mandatory); err != nil {
			return nil, storeError("failed to scan species rule", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to load species rules", err)
	}
	return rules, nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "general"
	}
	return category
}

// Ensure SpeciesRepository implements the interface
var _ secondary.SpeciesRepository = (*SpeciesRepository)(nil)
