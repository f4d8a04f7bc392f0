// Package apperror defines the error kinds of the import pipeline.
//
// Handlers use errors.As against these types to choose a status code:
// ParseError and ValidationError are client errors, ConflictError is 409
// and PersistenceError is a server error.
package apperror

import (
	"errors"
	"fmt"
)

// ErrImportInProgress is wrapped by ConflictError when an import is already running.
var ErrImportInProgress = errors.New("another import is already in progress")

// ParseError reports a malformed delimited input stream.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a row whose fields cannot be mapped to an address record.
// Row is the zero-based position of the row in the parsed sequence.
type ValidationError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("row %d: field %q: %s (got %q)", e.Row, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("row %d: field %q: %s", e.Row, e.Field, e.Reason)
}

// ConflictError reports a precondition failure, such as starting a second import.
type ConflictError struct {
	Err error
}

func (e *ConflictError) Error() string { return e.Err.Error() }

func (e *ConflictError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure other than a skipped duplicate.
type PersistenceError struct {
	Op         string
	Code       string
	Constraint string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("persistence: %s: %v (sqlstate %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsClientError reports whether err is caused by the request input.
func IsClientError(err error) bool {
	var parseErr *ParseError
	var validationErr *ValidationError
	return errors.As(err, &parseErr) || errors.As(err, &validationErr)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}
