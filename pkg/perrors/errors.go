// Package perrors provides structured error and warning types for plotshape.
//
// Validation failures abort a run before any geometry is built and carry a
// machine-readable code. Warnings are values: the pipeline collects them on
// the result and callers decide how to surface them; they never stop a run.
package perrors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error or warning code.
type Code string

// Validation error codes.
const (
	CodeMissingColumns  Code = "MISSING_COLUMNS"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidStagger  Code = "INVALID_STAGGER"
	CodeInvalidSubset   Code = "INVALID_SUBSET"
	CodeInvalidGrouping Code = "INVALID_GROUPING"
	CodeInvalidABLine   Code = "INVALID_ABLINE"
	CodeInvalidBuffer   Code = "INVALID_BUFFER"
	CodeInvalidUnit     Code = "INVALID_UNIT"
)

// Warning codes.
const (
	CodePlotCountMismatch Code = "PLOT_COUNT_MISMATCH"
	CodeNoCRS             Code = "NO_CRS"
)

// Error is a structured validation error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
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
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Warning is a non-fatal consistency finding. Execution continues.
type Warning struct {
	Code    Code
	Message string
}

// Warnf builds a Warning with a formatted message.
func Warnf(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
