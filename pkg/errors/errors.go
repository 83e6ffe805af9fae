// Package errors provides structured error types for depinject.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the artifact involved
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure surfaced by the resolution pipeline carries exactly one of
// the pipeline codes:
//   - INVALID_CONFIGURATION: a required argument is absent or empty
//   - MALFORMED_DESCRIPTOR: bad notation, unsafe coordinates, or a bad URL
//   - DOWNLOAD_FAILED: the artifact could not be materialized in the cache
//   - INJECTION_FAILED: the artifact could not be attached to its target
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "group cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors and record the artifact display name
//	err := errors.Wrap(errors.ErrCodeDownload, origErr, "unable to download %s", name).WithArtifact(name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pipeline errors
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeMalformedDescriptor  Code = "MALFORMED_DESCRIPTOR"
	ErrCodeDownload             Code = "DOWNLOAD_FAILED"
	ErrCodeInjection            Code = "INJECTION_FAILED"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code     Code   // Machine-readable error code
	Message  string // Human-readable message
	Artifact string // Display name of the artifact involved, e.g. "guava-33.0.0-jre" (optional)
	Cause    error  // Underlying error (optional)
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

// WithArtifact records the artifact display name and returns e.
func (e *Error) WithArtifact(name string) *Error {
	e.Artifact = name
	return e
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

// ArtifactName extracts the artifact display name recorded on the outermost
// *Error in the chain. Returns empty string if none was recorded.
func ArtifactName(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Artifact
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the root cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
