package model

import (
	"errors"
	"fmt"
)

var (
	// ErrSampleNotFound is returned when a sample lookup by name, ID, or
	// object identity matches nothing.
	ErrSampleNotFound = errors.New("sample not found")

	// ErrKeyNotFound is returned when a run-value key lookup matches nothing.
	ErrKeyNotFound = errors.New("key not found")

	// ErrSampleIndexOutOfRange is returned when a positional sample lookup
	// is outside the staged sample list.
	ErrSampleIndexOutOfRange = errors.New("sample index out of range")

	// ErrNoHeader is returned when a header field update is attempted
	// before any header has been set.
	ErrNoHeader = errors.New("no header set")

	// ErrNoReads is returned when a reads update is attempted before any
	// reads have been set.
	ErrNoReads = errors.New("no reads set")

	// ErrNoSettings is returned when a settings field update is attempted
	// before any settings have been set.
	ErrNoSettings = errors.New("no settings set")
)

// ValidationError describes a field value that failed model validation.
// Record carries the 1-based record number within the data section when the
// failure is tied to a specific record, and 0 otherwise.
type ValidationError struct {
	Record int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("%s in row %d: %s", e.Field, e.Record, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newMissingFieldError reports a required field that is absent or empty.
func newMissingFieldError(record int, field string) *ValidationError {
	return &ValidationError{
		Record: record,
		Field:  field,
		Reason: "missing required value",
	}
}
