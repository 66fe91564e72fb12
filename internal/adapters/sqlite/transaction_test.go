package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/tourney/internal/adapters/sqlite"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)
	counters := sqlite.NewCounterRepository(db)

	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return counters.Set(ctx, secondary.TeamNumberCounter, 4)
	})
	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	value, err := counters.Get(context.Background(), secondary.TeamNumberCounter)
	if err != nil || value != 4 {
		t.Errorf("expected committed value 4, got %d (%v)", value, err)
	}
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)
	counters := sqlite.NewCounterRepository(db)

	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := counters.Set(ctx, secondary.TeamNumberCounter, 4); err != nil {
			return err
		}
		return apperrors.TeamNotFound("team-x")
	})
	if !errors.Is(err, apperrors.ErrTeamNotFound) {
		t.Errorf("expected domain error to pass through, got %v", err)
	}

	if n := countRows(t, db, "counters"); n != 0 {
		t.Errorf("expected rollback, found %d counters", n)
	}
}

func TestTransactor_WrapsPlainErrorsAsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)

	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return errors.New("disk on fire")
	})
	if !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Errorf("expected STORE_UNAVAILABLE, got %v", err)
	}
}

func TestTransactor_RetriesConflicts(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)

	attempts := 0
	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return apperrors.New(apperrors.CodeTransactionConflict, "moved")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestTransactor_GivesUpAfterMaxAttempts(t *testing.T) {
	db := setupTestDB(t)
	tx := sqlite.NewTransactor(db, sqlite.TxOptions{MaxAttempts: 4, InitialBackoff: 1, MaxBackoff: 1})

	attempts := 0
	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		attempts++
		return apperrors.New(apperrors.CodeTransactionConflict, "moved")
	})
	if !errors.Is(err, apperrors.ErrTransactionConflict) {
		t.Errorf("expected TRANSACTION_CONFLICT, got %v", err)
	}
	if !apperrors.IsRetryable(err) {
		t.Error("expected exhausted conflict to stay retryable")
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestTransactor_DoesNotRetryDomainErrors(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)

	attempts := 0
	_ = tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		attempts++
		return apperrors.CatchNotFound("c1")
	})
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestTransactor_NestedJoinsOuter(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)
	counters := sqlite.NewCounterRepository(db)

	err := tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		inner := tx.RunInTransaction(ctx, func(ctx context.Context) error {
			return counters.Set(ctx, secondary.TeamNumberCounter, 9)
		})
		if inner != nil {
			return inner
		}
		return apperrors.Invalid("outer fails after inner succeeded")
	})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected outer error, got %v", err)
	}

	if n := countRows(t, db, "counters"); n != 0 {
		t.Errorf("inner write must roll back with the outer transaction, found %d", n)
	}
}

func TestTransactor_CancelledContext(t *testing.T) {
	db := setupTestDB(t)
	tx := newTestTransactor(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return nil
	})
	if !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Errorf("expected STORE_UNAVAILABLE for cancelled context, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in the chain, got %v", err)
	}
}
