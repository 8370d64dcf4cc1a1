// Package errors provides error handling for dataset-builder.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Build and query failures are classified by the sentinel errors below.
// Always wrap a sentinel rather than returning it bare, so the message carries
// the offending level, column or path:
//
//	return errors.Wrapf(errors.ErrMissingColumn, "column %q not in header", col)
//
// Callers classify with errors.Is or with Classify.
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	Mark           = crdb.Mark
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Failure taxonomy for dataset construction and queries.
// Every failure surfaced by the config, dataset and level packages wraps
// exactly one of these.
var (
	// ErrConfigInvalid indicates required configuration keys are missing or mistyped
	ErrConfigInvalid = New("config invalid")

	// ErrSourceNotFound indicates the data objects table does not exist
	ErrSourceNotFound = New("source not found")

	// ErrMissingColumn indicates a hierarchy column is absent from the table header
	ErrMissingColumn = New("missing column")

	// ErrHierarchyDepthExceeded indicates a nested mapping is deeper than the level hierarchy
	ErrHierarchyDepthExceeded = New("hierarchy depth exceeded")

	// ErrMultipleParents indicates an expanded tree node has more than one parent
	ErrMultipleParents = New("multiple parents")

	// ErrInvalidParentType indicates a parent is not at the preceding level
	ErrInvalidParentType = New("invalid parent type")

	// ErrUnknownLevel indicates a query named a level that is not configured
	ErrUnknownLevel = New("unknown level")

	// ErrNotFound indicates no entity matched a query
	ErrNotFound = New("not found")
)

var taxonomy = []struct {
	sentinel error
	name     string
}{
	{ErrConfigInvalid, "ConfigInvalid"},
	{ErrSourceNotFound, "SourceNotFound"},
	{ErrMissingColumn, "MissingColumn"},
	{ErrHierarchyDepthExceeded, "HierarchyDepthExceeded"},
	{ErrMultipleParents, "MultipleParentsError"},
	{ErrInvalidParentType, "InvalidParentTypeError"},
	{ErrUnknownLevel, "UnknownLevelError"},
	{ErrNotFound, "NotFoundError"},
}

// Classify returns the taxonomy name of the first sentinel err wraps,
// or "Internal" for anything unclassified. Returns "" for nil.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	for _, t := range taxonomy {
		if Is(err, t.sentinel) {
			return t.name
		}
	}
	return "Internal"
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}
