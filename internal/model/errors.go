package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthenticated is returned when no token accompanies a request.
	ErrUnauthenticated = errors.New("no token provided")

	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrMalformedToken is returned when a token fails signature or
	// structural checks.
	ErrMalformedToken = errors.New("malformed token")

	// ErrPrincipalNotFound is returned when a verified token references
	// a user that no longer exists.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrForbidden is returned when the principal's role is not in the
	// operation's allowed set.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. Deliberately indistinct between the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRatingValue is returned when a rating value is outside
	// [RatingMin, RatingMax].
	ErrInvalidRatingValue = errors.New("rating value out of range")

	// ErrDuplicateEmail is returned when a unique email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrRatingExists is returned by RatingStore.Create when the
	// (user, store) pair already has a rating.
	ErrRatingExists = errors.New("rating already exists")

	// ErrNoStoreAssigned is returned when a store owner has no store
	// associated with their account.
	ErrNoStoreAssigned = errors.New("no store assigned to this owner")

	// ErrStoreUnavailable is returned when the persistence layer fails
	// unexpectedly. Retryable from the caller's point of view.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
