package errors

import stderrors "errors"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Identifiers involved (team_id, catch_id, ...)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is comparisons. Matching is by code, so any *Error
// carrying the same code satisfies errors.Is against these values.
var (
	ErrPreconditionMissing = New(CodePreconditionMissing, "precondition missing")
	ErrTeamNotFound        = New(CodeTeamNotFound, "team not found")
	ErrCatchNotFound       = New(CodeCatchNotFound, "catch not found")
	ErrSpeciesNotFound     = New(CodeSpeciesNotFound, "species not found")
	ErrInvalidInput        = New(CodeInvalidInput, "invalid input")
	ErrTransactionConflict = New(CodeTransactionConflict, "transaction conflict")
	ErrStoreUnavailable    = New(CodeStoreUnavailable, "store unavailable")
)

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error carrying identifiers for the caller.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TeamNotFound builds a TEAM_NOT_FOUND error for the given team.
func TeamNotFound(teamID string) *Error {
	return WithMetadata(CodeTeamNotFound, "team "+teamID+" not found", map[string]string{"team_id": teamID})
}

// CatchNotFound builds a CATCH_NOT_FOUND error for the given catch.
func CatchNotFound(catchID string) *Error {
	return WithMetadata(CodeCatchNotFound, "catch "+catchID+" not found", map[string]string{"catch_id": catchID})
}

// SpeciesNotFound builds a SPECIES_NOT_FOUND error for the given species.
func SpeciesNotFound(speciesID string) *Error {
	return WithMetadata(CodeSpeciesNotFound, "species "+speciesID+" not found", map[string]string{"species_id": speciesID})
}

// Invalid builds an INVALID_INPUT error with the guard's reason.
func Invalid(reason string) *Error {
	return New(CodeInvalidInput, reason)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsRetryable reports whether err carries a retryable code.
func IsRetryable(err error) bool {
	return CodeOf(err).Retryable()
}

// IsDomain reports whether err already carries a domain code.
func IsDomain(err error) bool {
	var e *Error
	return stderrors.As(err, &e)
}
