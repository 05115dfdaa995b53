// Package parsererror defines the error taxonomy shared by the stores,
// the aggregation engine and the recurrence processor.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a storage backend when no persisted data exists yet.
// Stores treat it as an empty initial state.
var ErrNotFound = errors.New("persisted data not found")

// ParseError represents an error during parsing of persisted data or of a
// single record field such as a date.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents rejected input: an index out of range, an
// unknown recurrence frequency, an empty category.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// SaveError represents a failed write of a collection. The in-memory state
// remains authoritative until the next successful save.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save data to '%s': %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSave reports whether err is, or wraps, a SaveError.
func IsSave(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}
