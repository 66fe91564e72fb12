// Package score contains the pure point arithmetic of the score ledger.
// This is part of the Functional Core - no I/O, only pure functions.
package score

import (
	"fmt"

	apperrors "github.com/example/tourney/internal/errors"
)

// ApplyCatch returns the team total after crediting a catch.
func ApplyCatch(total, points int) int {
	return total + points
}

// ReverseCatch returns the team total after removing a catch's contribution.
// The result is clamped at zero so stale or inconsistent data can never drive
// a total negative.
func ReverseCatch(total, points int) int {
	if next := total - points; next > 0 {
		return next
	}
	return 0
}

// Sum adds up catch points. It is the definition of a team's total.
func Sum(points []int) int {
	total := 0
	for _, p := range points {
		total += p
	}
	return total
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an INVALID_INPUT error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperrors.Invalid(r.Reason)
}

// RecordCatchContext provides context for the ledger's own preconditions.
type RecordCatchContext struct {
	TeamID string
	Points int
}

// CanRecordCatch evaluates whether a precomputed catch can enter the ledger.
// Rules:
// - Team reference must be set
// - Points must be non-negative
func CanRecordCatch(ctx RecordCatchContext) GuardResult {
	if ctx.TeamID == "" {
		return GuardResult{Allowed: false, Reason: "team id is required"}
	}
	if ctx.Points < 0 {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("points must be non-negative (got %d)", ctx.Points)}
	}
	return GuardResult{Allowed: true}
}
