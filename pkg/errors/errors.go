// Package errors provides structured error types for octoscope.
//
// Every failure the GitHub client can produce is classified into exactly one
// [Code]. The orchestrator and the terminal shell never inspect HTTP status
// codes or GitHub's error text directly; they switch on the code and show the
// message returned by [UserMessage].
//
// # Error Codes
//
//   - INVALID_INPUT: rejected locally, no request was sent
//   - NOT_FOUND: GitHub answered 404
//   - RATE_LIMITED: GitHub answered 403 or 429
//   - UNAUTHORIZED: GitHub answered 401 (the configured token is bad)
//   - SERVER_ERROR: any other non-2xx status, or an undecodable body
//   - NETWORK_FAILURE: the request never completed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "username cannot be empty")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // render "User not found"
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "GET %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure taxonomy.
const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeServer       Code = "SERVER_ERROR"
	ErrCodeNetwork      Code = "NETWORK_FAILURE"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code      // Machine-readable error code
	Message string    // Human-readable message (may be GitHub's own text)
	Cause   error     // Underlying error (optional)
	Status  int       // HTTP status, 0 when no response was received
	ResetAt time.Time // Rate limit reset, zero when unknown
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

// RateLimited creates a RATE_LIMITED error. A zero resetAt means GitHub did
// not say when the window resets.
func RateLimited(status int, resetAt time.Time, message string) *Error {
	return &Error{
		Code:    ErrCodeRateLimited,
		Message: message,
		Status:  status,
		ResetAt: resetAt,
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

// ResetTime returns the rate limit reset carried by err, if any.
func ResetTime(err error) (time.Time, bool) {
	var e *Error
	if errors.As(err, &e) && !e.ResetAt.IsZero() {
		return e.ResetAt, true
	}
	return time.Time{}, false
}

// IsContext reports whether err stems from a cancelled or expired context.
func IsContext(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
