package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, belongs to another user, or has been soft-deleted.
// The three cases are deliberately indistinguishable to callers.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when credentials or a session token are rejected.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a write violates a uniqueness rule
// (duplicate email, duplicate preference template name).
var ErrConflict = errors.New("conflict")

// ErrQuotaExceeded is returned when a user has used up the daily number of
// itinerary generations.
var ErrQuotaExceeded = errors.New("generation quota exceeded")

// ErrGenerationFailed is returned when the itinerary generator fails or
// returns an unusable itinerary.
var ErrGenerationFailed = errors.New("generation failed")

// ValidationError identifies the first business rule an input violated.
// errors.Is(err, ErrValidation) reports true for every *ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Is makes the typed error match the ErrValidation sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
