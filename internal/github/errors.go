package github

import (
	"errors"
	"fmt"
	"time"
)

// APIError represents a non-success response from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned when the API quota is exhausted and retries
// were abandoned.
type RateLimitError struct {
	ResetTime time.Time
	Limit     int
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded, resets at %v (limit %d, remaining %d)",
		e.ResetTime, e.Limit, e.Remaining)
}

// ValidationError represents invalid input to client methods.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Reason)
}

// RepositoryNotFoundError is returned for 404 responses on repository
// endpoints.
type RepositoryNotFoundError struct {
	Owner string
	Name  string
}

func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s/%s", e.Owner, e.Name)
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string, err error) error {
	return &APIError{StatusCode: statusCode, Message: message, Err: err}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsRateLimitError checks whether err is (or wraps) a rate limit error.
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsNotFoundError checks whether err is (or wraps) a repository-not-found
// error.
func IsNotFoundError(err error) bool {
	var nfe *RepositoryNotFoundError
	return errors.As(err, &nfe)
}
