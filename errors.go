package samplesheet

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatViolation indicates the document structure violates the active
	// parsing rules. Concrete failures are reported as *FormatError values
	// that match this sentinel via errors.Is.
	ErrFormatViolation = errors.New("samplesheet: format violation")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("samplesheet: unsupported file format")

	// ErrNilSheet indicates a nil sample sheet was passed to a writer
	ErrNilSheet = errors.New("samplesheet: nil sample sheet")
)

// FormatError describes a structural violation found while sectioning a
// document: a row whose width breaks the configured column-consistency
// policy, a data row appearing before any section header when headers are
// required, or a malformed per-section row shape. RowIndex is 1-based within
// the section and 0 when the violation is not tied to a single row.
type FormatError struct {
	SectionName   string
	RowIndex      int
	ExpectedWidth int
	ActualWidth   int
	Reason        string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	name := "unnamed section"
	if e.SectionName != "" {
		name = fmt.Sprintf("section %q", e.SectionName)
	}
	switch {
	case e.Reason != "" && e.RowIndex > 0:
		return fmt.Sprintf("%s row %d: %s", name, e.RowIndex, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", name, e.Reason)
	case e.RowIndex > 0:
		return fmt.Sprintf("%s row %d: expected %d columns, got %d", name, e.RowIndex, e.ExpectedWidth, e.ActualWidth)
	default:
		return fmt.Sprintf("%s: expected %d columns, got %d", name, e.ExpectedWidth, e.ActualWidth)
	}
}

// Is reports whether target is ErrFormatViolation, so callers can test for
// any structural failure without inspecting the concrete type.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormatViolation
}
