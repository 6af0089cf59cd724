package models

import "fmt"

// ErrorKind classifies terminal failures of a consolidation run.
// Per-file ingestion failures are not errors; they travel as data
// inside ConsolidationResult.
type ErrorKind string

const (
	ErrInvalidDirectory ErrorKind = "invalid_directory"
	ErrNoFilesFound     ErrorKind = "no_files_found"
	ErrNoValidData      ErrorKind = "no_valid_data"
	ErrWriteFailure     ErrorKind = "write_failure"
)

// RunError is a terminal pipeline failure tagged with its kind.
type RunError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// NewRunError creates a terminal error without an underlying cause.
func NewRunError(kind ErrorKind, format string, args ...interface{}) *RunError {
	return &RunError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapRunError creates a terminal error wrapping an underlying I/O cause.
func WrapRunError(kind ErrorKind, cause error, format string, args ...interface{}) *RunError {
	return &RunError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the error's kind, or "" for untagged errors.
func KindOf(err error) ErrorKind {
	if runErr, ok := err.(*RunError); ok {
		return runErr.Kind
	}
	return ""
}
