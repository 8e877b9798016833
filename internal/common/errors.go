// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/backoffice/internal/model"
)

// Common application errors.
var (
	// Lookup errors.
	ErrNotFound        = errors.New("not found")
	ErrAlreadyResolved = errors.New("grievance already resolved")

	// Grievance errors.
	ErrEmptyMessage    = errors.New("resolution message is empty")
	ErrUnknownUserType = errors.New("unknown user type")

	// Schedule service errors.
	ErrServiceUnavailable = errors.New("schedule service unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

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

// SourceError records which grievance source a failure came from.
type SourceError struct {
	Err    error
	Source model.UserType
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s grievances: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the operator for err. It prefers the
// message of a wrapped UserError and falls back to the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
