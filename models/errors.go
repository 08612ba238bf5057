// models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrNoCandidateWord is returned when the word source has no word of the requested length.
	ErrNoCandidateWord = errors.New("no candidate word")

	// ErrAlreadySolved rejects a guess after the user already found the answer.
	ErrAlreadySolved = errors.New("answer already guessed")

	// ErrGuessLimitReached rejects a guess once max_guesses guesses are recorded.
	ErrGuessLimitReached = errors.New("guess limit reached")

	// ErrPuzzleInactive rejects a guess against an answer outside its activation window.
	ErrPuzzleInactive = errors.New("puzzle is not active")

	// ErrNotMember rejects a guess from a user without an active membership.
	ErrNotMember = errors.New("not an active league member")
)

// ValidationError reports bad caller input. No state is changed when it is returned.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// MultiplicityError means a lookup expected to be unique returned several rows.
// It signals corrupted data and must not be swallowed.
type MultiplicityError struct {
	Entity string
	Count  int
}

func (e *MultiplicityError) Error() string {
	return fmt.Sprintf("expected only one %s entry, found %d", e.Entity, e.Count)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsMultiplicity reports whether err is (or wraps) a MultiplicityError.
func IsMultiplicity(err error) bool {
	var m *MultiplicityError
	return errors.As(err, &m)
}
