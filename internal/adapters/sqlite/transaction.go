// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/tourney/internal/ctxutil"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

const tracerName = "github.com/example/tourney/internal/adapters/sqlite"

// Defaults for TxOptions zero values.
const (
	DefaultMaxAttempts    = 10
	DefaultInitialBackoff = 5 * time.Millisecond
	DefaultMaxBackoff     = 250 * time.Millisecond
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TxOptions configures the retry policy of a Transactor.
type TxOptions struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (o TxOptions) withDefaults() TxOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = DefaultInitialBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
	if o.MaxBackoff < o.InitialBackoff {
		o.MaxBackoff = o.InitialBackoff
	}
	return o
}

// Transactor implements secondary.Transactor with SQLite transactions.
//
// A unit of work that hits a conflict (a compare-and-set miss reported by a
// repository, or SQLITE_BUSY / SQLITE_LOCKED from the driver) is rolled back
// and re-run with exponential backoff. When attempts run out the caller gets
// TRANSACTION_CONFLICT. Any error that is not already a domain error is
// reported as STORE_UNAVAILABLE.
type Transactor struct {
	db     *sql.DB
	opts   TxOptions
	tracer trace.Tracer
}

// NewTransactor creates a new SQLite transactor.
func NewTransactor(db *sql.DB, opts TxOptions) *Transactor {
	return &Transactor{
		db:     db,
		opts:   opts.withDefaults(),
		tracer: otel.Tracer(tracerName),
	}
}

// RunInTransaction runs fn inside a transaction. If ctx already carries one,
// fn joins it and no retry happens at this level.
func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	ctx, span := t.tracer.Start(ctx, "sqlite.transaction")
	defer span.End()
	if station := ctxutil.StationFromContext(ctx); station != "" {
		span.SetAttributes(attribute.String("tourney.station", station))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.opts.InitialBackoff
	b.MaxInterval = t.opts.MaxBackoff

	attempts := 0
	operation := func() (struct{}, error) {
		attempts++
		err := t.runOnce(ctx, fn)
		if err == nil {
			return struct{}{}, nil
		}
		if isConflict(err) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}
	notify := func(err error, next time.Duration) {
		log.Printf("sqlite: transaction conflict on attempt %d, retrying in %s: %v", attempts, next, err)
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(t.opts.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	span.SetAttributes(attribute.Int("tourney.tx.attempts", attempts))

	err = classify(ctx, err, attempts)
	if err != nil {
		span.SetAttributes(attribute.String("tourney.error.code", string(apperrors.CodeOf(err))))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// runOnce executes one attempt: begin, fn, commit.
func (t *Transactor) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("sqlite: rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// classify maps the final error of a transaction onto a domain error.
func classify(ctx context.Context, err error, attempts int) error {
	if err == nil {
		return nil
	}
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	switch {
	case isConflict(err):
		return &apperrors.Error{
			Code:     apperrors.CodeTransactionConflict,
			Message:  fmt.Sprintf("transaction gave up after %d attempts", attempts),
			Metadata: map[string]string{"attempts": fmt.Sprint(attempts)},
			Cause:    err,
		}
	case apperrors.IsDomain(err):
		return err
	case ctx.Err() != nil:
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, "transaction aborted", err)
	default:
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, "store unavailable", err)
	}
}

// isConflict reports whether err means another writer got there first.
func isConflict(err error) bool {
	if apperrors.CodeOf(err) == apperrors.CodeTransactionConflict {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// storeError wraps a driver failure. Busy and locked errors become conflicts
// so the transactor retries them; everything else is STORE_UNAVAILABLE.
func storeError(message string, err error) error {
	if isConflict(err) {
		return apperrors.Wrap(apperrors.CodeTransactionConflict, message, err)
	}
	return apperrors.Wrap(apperrors.CodeStoreUnavailable, message, err)
}

// Ensure Transactor implements the interface
var _ secondary.Transactor = (*Transactor)(nil)
