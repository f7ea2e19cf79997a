// Package errors classifies pipeline failures into the coarse categories
// the HTTP layer reports.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codetime-dev/codetime/internal/github"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	ErrNotFound     ErrorType = "NOT_FOUND"
	ErrRateLimit    ErrorType = "RATE_LIMIT"
	ErrInvalidInput ErrorType = "INVALID_INPUT"
	ErrUpstream     ErrorType = "UPSTREAM"
	ErrInternal     ErrorType = "INTERNAL"
)

// AppError pairs an error with its category.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// Classify assigns a category to an arbitrary pipeline error. Unrecognized
// errors are internal.
func Classify(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	if github.IsNotFoundError(err) {
		return ErrNotFound
	}
	if github.IsRateLimitError(err) {
		return ErrRateLimit
	}
	var validationErr *github.ValidationError
	if errors.As(err, &validationErr) {
		return ErrInvalidInput
	}
	// Reference and timezone parse failures come through as plain wrapped
	// errors from the service boundary.
	msg := err.Error()
	if strings.Contains(msg, "invalid repository reference") ||
		strings.Contains(msg, "invalid repository URL") ||
		strings.Contains(msg, "empty repository reference") ||
		strings.Contains(msg, "invalid timezone") {
		return ErrInvalidInput
	}
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return ErrUpstream
	}
	return ErrInternal
}

// IsNotFound checks whether the error classifies as not found.
func IsNotFound(err error) bool {
	return Classify(err) == ErrNotFound
}

// IsInvalidInput checks whether the error classifies as invalid input.
func IsInvalidInput(err error) bool {
	return Classify(err) == ErrInvalidInput
}
