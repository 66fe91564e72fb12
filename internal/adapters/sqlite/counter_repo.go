package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

// CounterRepository implements secondary.CounterRepository with SQLite.
type CounterRepository struct {
	db *sql.DB
}

// NewCounterRepository creates a new SQLite counter repository.
func NewCounterRepository(db *sql.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Get returns the current value of a counter.
func (r *CounterRepository) Get(ctx context.Context, name string) (int, error) {
	var value int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT current_value FROM counters WHERE name = ?", name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, missingCounter(name)
	}
	if err != nil {
		return 0, storeError("failed to read counter", err)
	}
	return value, nil
}

// CompareAndSet moves the counter from old to new.
func (r *CounterRepository) CompareAndSet(ctx context.Context, name string, old, new int) error {
	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx,
		"UPDATE counters SET current_value = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ? AND current_value = ?",
		new, name, old,
	)
	if err != nil {
		return storeError("failed to advance counter", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to get rows affected", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	if _, err := r.Get(ctx, name); err != nil {
		return err
	}
	return apperrors.WithMetadata(apperrors.CodeTransactionConflict,
		fmt.Sprintf("counter %s moved away from %d", name, old),
		map[string]string{"counter": name})
}

// Set initialises or overwrites a counter.
func (r *CounterRepository) Set(ctx context.Context, name string, value int) error {
	if value < 0 {
		return apperrors.Invalid(fmt.Sprintf("counter value cannot be negative (got %d)", value))
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO counters (name, current_value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET current_value = excluded.current_value, updated_at = CURRENT_TIMESTAMP`,
		name, value,
	)
	if err != nil {
		return storeError("failed to set counter", err)
	}
	return nil
}

func missingCounter(name string) error {
	return apperrors.WithMetadata(apperrors.CodePreconditionMissing,
		fmt.Sprintf("counter %s has not been initialised; run 'tourney init' or 'tourney counter set'", name),
		map[string]string{"counter": name})
}

// Ensure CounterRepository implements the interface
var _ secondary.CounterRepository = (*CounterRepository)(nil)
