// Package apperror provides a structured way to handle application errors
// with specific codes, severity levels, and additional details. It also
// includes utilities for converting to ConnectRPC errors.
package apperror

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
)

// ErrorCode represents a specific application error code.
type ErrorCode string

const (
	// Validation
	CodeMismatchedLengths ErrorCode = "MISMATCHED_LENGTHS"
	CodeEmptyCorridor     ErrorCode = "EMPTY_CORRIDOR"
	CodeIndexOutOfRange   ErrorCode = "INDEX_OUT_OF_RANGE"
	CodeNegativeValue     ErrorCode = "NEGATIVE_VALUE"
	CodeNonNumeric        ErrorCode = "NON_NUMERIC"
	CodeCorridorTooLarge  ErrorCode = "CORRIDOR_TOO_LARGE"
	CodeNilInput          ErrorCode = "NIL_INPUT"
	CodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"

	// Reports
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeReportFailed  ErrorCode = "REPORT_FAILED"

	// General
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeUnimplemented    ErrorCode = "UNIMPLEMENTED"
)

// Severity defines the criticality level of an error.
type Severity int

const (
	// SeverityWarning indicates a non-critical issue that can be ignored or automatically resolved.
	SeverityWarning Severity = iota
	// SeverityError indicates a standard error that requires attention.
	SeverityError
	// SeverityCritical indicates a severe error that might require immediate human intervention.
	SeverityCritical
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Error is a custom error type that includes an ErrorCode, message,
// an optional field, additional details, an underlying cause, and a severity level.
type Error struct {
	Code     ErrorCode      // Code is a unique identifier for the type of error.
	Message  string         // Message is a human-readable description of the error.
	Field    string         // Field indicates which input field caused the error, if applicable.
	Details  map[string]any // Details provides additional structured information about the error.
	Cause    error          // Cause is the underlying error that triggered this application error.
	Severity Severity       // Severity indicates the criticality level of the error.
}

// Error implements the error interface, returning a string representation of the error.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, allowing for error chain introspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ConnectCode maps an ErrorCode to an appropriate connect.Code.
func (e *Error) ConnectCode() connect.Code {
	switch e.Code {
	case CodeMismatchedLengths, CodeEmptyCorridor, CodeIndexOutOfRange,
		CodeNegativeValue, CodeNonNumeric, CodeNilInput, CodeInvalidArgument,
		CodeInvalidFormat, CodeCorridorTooLarge:
		return connect.CodeInvalidArgument

	case CodeNotFound:
		return connect.CodeNotFound

	case CodeUnauthenticated:
		return connect.CodeUnauthenticated

	case CodePermissionDenied:
		return connect.CodePermissionDenied

	case CodeRateLimited:
		return connect.CodeResourceExhausted

	case CodeUnavailable:
		return connect.CodeUnavailable

	case CodeUnimplemented:
		return connect.CodeUnimplemented

	default:
		return connect.CodeInternal
	}
}

// ToConnect converts any error into a *connect.Error. Application errors keep
// their code mapping; everything else becomes CodeInternal.
func ToConnect(err error) *connect.Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return connect.NewError(appErr.ConnectCode(), appErr)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// New creates a new application error with the given code and message.
// The default severity is SeverityError.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Details:  make(map[string]any),
		Severity: SeverityError,
	}
}

// NewWithField creates a new application error with the given code, message, and field.
// The default severity is SeverityError.
func NewWithField(code ErrorCode, message, field string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Field:    field,
		Details:  make(map[string]any),
		Severity: SeverityError,
	}
}

// NewWarning creates a new application error with SeverityWarning.
func NewWarning(code ErrorCode, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Details:  make(map[string]any),
		Severity: SeverityWarning,
	}
}

// Wrap creates a new application error that wraps an existing error,
// providing additional context with a code and message.
// The default severity is SeverityError.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Cause:    cause,
		Details:  make(map[string]any),
		Severity: SeverityError,
	}
}

// WithDetails adds a key-value pair to the error's details map and returns the modified error.
func (e *Error) WithDetails(key string, value any) *Error {
	e.Details[key] = value
	return e
}

// WithField sets the field associated with the error and returns the modified error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error and returns the modified error.
func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// Is checks if the given error is an application error with a matching ErrorCode.
// It uses errors.As to unwrap the error chain.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
