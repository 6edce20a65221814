// Package errors provides structured error types for the welcome-screen renderer.
//
// Every failure that leaves the pipeline carries a machine-readable [Code] so
// callers can tell bad input apart from slow or broken rendering without
// parsing messages:
//
//   - VALIDATION_ERROR: missing or malformed guest fields, rejected before any work
//   - QR_ENCODE_ERROR: payload exceeds QR capacity at error-correction level Q
//   - ASSET_LOAD_ERROR: background image unreachable or undecodable
//   - RENDER_TIMEOUT: an out-of-process renderer exceeded its deadline
//
// The renderer never retries internally; every error is terminal for the call
// that produced it.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "room number is required")
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeAssetLoad, origErr, "fetch %s", url)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeValidation    Code = "VALIDATION_ERROR"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Rendering errors
	ErrCodeQREncode      Code = "QR_ENCODE_ERROR"
	ErrCodeAssetLoad     Code = "ASSET_LOAD_ERROR"
	ErrCodeRenderTimeout Code = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  Code = "RENDER_FAILED"
	ErrCodeCanceled      Code = "CANCELED"

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
		return e.Message
	}
	return err.Error()
}

// FromContext classifies a context error raised while rendering.
// A deadline becomes RENDER_TIMEOUT and a cancellation becomes CANCELED, so
// callers can distinguish "too slow" from "stopped by caller". Any other error
// is wrapped as RENDER_FAILED. Nil stays nil.
func FromContext(err error, stage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeRenderTimeout, err, "%s exceeded its deadline", stage)
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeCanceled, err, "%s canceled", stage)
	default:
		var e *Error
		if errors.As(err, &e) {
			return err
		}
		return Wrap(ErrCodeRenderFailed, err, "%s failed", stage)
	}
}
