// Package errors provides structured error types for planbook.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, pipeline and preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages naming the offending declaration
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three groups:
//   - INVALID_*: construction mistakes (bad layout splits, bad declarations, bad config)
//   - state codes: operations issued in the wrong phase (finalized page sets,
//     sealed or unsealed registries, uncomputed layout nodes)
//   - INTERNAL_*: unexpected internal errors
//
// Lookup misses are not errors: resolvers return nil and leave the decision to
// the caller.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayout, "columns %q: count and sizes are exclusive", name)
//	if errors.Is(err, errors.ErrCodeInvalidLayout) {
//	    // Handle construction error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidLayout      Code = "INVALID_LAYOUT"
	ErrCodeInvalidDeclaration Code = "INVALID_DECLARATION"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeDuplicateDest      Code = "DUPLICATE_DESTINATION"

	// State errors
	ErrCodeFinalized         Code = "STATE_FINALIZED"
	ErrCodeRegistrySealed    Code = "REGISTRY_SEALED"
	ErrCodeRegistryNotSealed Code = "REGISTRY_NOT_SEALED"
	ErrCodeNotComputed       Code = "NOT_COMPUTED"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// IsState reports whether err is a phase/state violation rather than a
// construction mistake.
func IsState(err error) bool {
	switch GetCode(err) {
	case ErrCodeFinalized, ErrCodeRegistrySealed, ErrCodeRegistryNotSealed, ErrCodeNotComputed:
		return true
	}
	return false
}
