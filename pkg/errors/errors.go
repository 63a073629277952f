// Package errors provides structured error types for gitgraph.
//
// Every pipeline stage fails with a coded error so the CLI can report which
// stage broke without string matching:
//   - PARSE_ERROR: malformed git log output
//   - CONSISTENCY_ERROR: the history graph violated an internal invariant
//   - UPSTREAM_ERROR: a git subprocess failed or produced unusable output
//   - RENDER_ERROR: the renderer rejected the DOT text or output format
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "malformed record: %q", line)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle parse failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUpstream, cmdErr, "run %s", cmdline)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes, one per failure category.
const (
	// ErrCodeParse marks a malformed record from the log source. Fatal;
	// no partial graph is ever built from a corrupt capture.
	ErrCodeParse Code = "PARSE_ERROR"

	// ErrCodeConsistency marks a duplicate commit hash or a violated graph
	// invariant. Indicates caller misuse or a builder bug, not bad input.
	ErrCodeConsistency Code = "CONSISTENCY_ERROR"

	// ErrCodeUpstream marks a failed git subprocess. The message names the
	// failing command.
	ErrCodeUpstream Code = "UPSTREAM_ERROR"

	// ErrCodeRender marks a renderer rejection; the renderer's own
	// diagnostic is preserved verbatim in the message or cause.
	ErrCodeRender Code = "RENDER_ERROR"

	// Input validation errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// ErrCodeInternal marks unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
