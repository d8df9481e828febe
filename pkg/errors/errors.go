// Package errors provides structured error types for the inflate solver.
//
// Every failure the solver, the CLI, and the HTTP service can report carries
// a machine-readable [Code], so callers branch on the category of a failure
// instead of parsing messages:
//   - INVALID_*: input or option validation failures, detected before solving
//   - BRACKETING_FAILED: no sign change of the residual inside the search range
//   - DEGENERATE_RATIO: a residual evaluation too close to G = 1
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "layers must be >= 1, got %g", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // ask the user for new inputs
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
	// Validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Solver errors
	ErrCodeBracketingFailed Code = "BRACKETING_FAILED"
	ErrCodeDegenerateRatio  Code = "DEGENERATE_RATIO"

	// Shell errors
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded failure. Cause, when set, is reachable through
// errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "" when
// there is none.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// UserMessage is the text shown to people: the message of a coded error
// without its code, or err.Error() for anything else.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is one of the INVALID_* codes, i.e. a
// failure the caller can fix by changing its inputs.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidOptions, ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return true
	}
	return false
}
