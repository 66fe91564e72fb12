// Package errors provides the coded error type surfaced by the scoring core.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// CodePreconditionMissing means required operator-initialised state is absent
	// (for example the team-number counter row).
	CodePreconditionMissing Code = "PRECONDITION_MISSING"

	// Lookup errors
	CodeTeamNotFound    Code = "TEAM_NOT_FOUND"
	CodeCatchNotFound   Code = "CATCH_NOT_FOUND"
	CodeSpeciesNotFound Code = "SPECIES_NOT_FOUND"

	// CodeInvalidInput is returned by guards rejecting a request.
	CodeInvalidInput Code = "INVALID_INPUT"

	// Store errors
	CodeTransactionConflict Code = "TRANSACTION_CONFLICT"
	CodeStoreUnavailable    Code = "STORE_UNAVAILABLE"
)

// Retryable reports whether repeating the whole logical operation may succeed.
func (c Code) Retryable() bool {
	switch c {
	case CodeTransactionConflict, CodeStoreUnavailable:
		return true
	default:
		return false
	}
}

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}
