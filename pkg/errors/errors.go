// Package errors provides structured error types for s7db.
//
// Every failure surfaced by the generator carries a machine-readable [Code]
// so callers (CLI, HTTP API) can react to the category without matching on
// message text:
//
//   - INVALID_*: the caller supplied malformed input (names, values, formats)
//   - JAGGED_ARRAY: nested array values are not rectangular
//   - UNSUPPORTED_TYPE: a variable or array element kind is not supported
//   - UNIMPLEMENTED: a supported kind cannot be rendered in this shape
//   - IO_ERROR, FILE_NOT_FOUND: file system failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedType, "element type %s not supported", kind)
//	if errors.Is(err, errors.ErrCodeUnsupportedType) {
//	    // Handle unsupported type
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeJaggedArray   Code = "JAGGED_ARRAY"

	// Type support errors
	ErrCodeUnsupportedType Code = "UNSUPPORTED_TYPE"
	ErrCodeUnimplemented   Code = "UNIMPLEMENTED"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeCache        Code = "CACHE_ERROR"

	// Internal errors
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
// An empty code is replaced by ErrCodeInternal.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	if code == "" {
		code = ErrCodeInternal
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is considered.
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

// IsUserError reports whether err was caused by the caller's input rather than
// by the environment (file system, cache backend) or a bug.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidName, ErrCodeInvalidValue, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeJaggedArray, ErrCodeUnsupportedType, ErrCodeUnimplemented:
		return true
	default:
		return false
	}
}
