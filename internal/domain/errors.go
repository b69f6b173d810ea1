package domain

import (
	"errors"
	"fmt"
)

// ErrSeatTaken is returned by a store when the conditional seat claim finds
// the seat already held. The service layer surfaces it as a ValidationError.
var ErrSeatTaken = errors.New("seat is already held")

// ErrDuplicateID is returned by a store when a booking insert collides with
// an existing booking id. The service regenerates the id and retries once.
var ErrDuplicateID = errors.New("booking id already exists")

// ErrNotFound is returned by stores and collaborators when a keyed record
// does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a precondition failure on caller-supplied input.
// Nothing is mutated when one is returned.
type ValidationError struct {
	Check string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Check
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Check: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing booking on paths where absence is an error
// rather than a normal empty result.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe) || errors.Is(err, ErrNotFound)
}
