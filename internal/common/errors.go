// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Measurement validation errors.
	ErrInvalidReference  = errors.New("invalid reference segment")
	ErrDegeneratePolygon = errors.New("degenerate polygon")
	ErrInvalidAngle      = errors.New("invalid slope angle")

	// Map provider errors.
	ErrMapUnavailable = errors.New("map service unavailable")
	ErrBadCoordinates = errors.New("unrecognized coordinates")
	ErrZoomRange      = errors.New("zoom level out of range")

	// Cache errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsValidation reports whether an error is one of the anticipated input
// validation failures. These are reported to the caller as structured
// messages, never as internal faults.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrDegeneratePolygon) ||
		errors.Is(err, ErrInvalidAngle) ||
		errors.Is(err, ErrBadCoordinates)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the message intended for the user, falling back
// to the raw error text when no UserError is present in the chain.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
