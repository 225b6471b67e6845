// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for fetch, extraction and authorization failures

package errors

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a guarded fetch was rejected or failed.
type FetchErrorKind string

const (
	FetchInvalidScheme    FetchErrorKind = "invalid_scheme"
	FetchBlockedHost      FetchErrorKind = "blocked_host"
	FetchTimeout          FetchErrorKind = "timeout"
	FetchUpstreamHTTP     FetchErrorKind = "upstream_http_error"
	FetchResponseTooLarge FetchErrorKind = "response_too_large"
	FetchDecodeError      FetchErrorKind = "decode_error"
)

// FetchError represents a failure in the guarded fetch of a remote page.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int // set only for FetchUpstreamHTTP
	Message    string
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Kind == FetchUpstreamHTTP && e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed: %d", e.StatusCode)
	}
	return e.Message
}

// ExtractionError represents a failure to derive readable content from a page.
type ExtractionError struct {
	Message string
	Empty   bool // true when the page yielded no usable text
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return e.Message
}

// NotFoundError represents a resource not found error. It also covers
// owner-scoped updates that matched zero rows, so a mismatched owner is
// indistinguishable from a missing record.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UnauthorizedError represents a missing or invalid identity.
type UnauthorizedError struct {
	Message string
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsFetchKind checks if an error is a FetchError of the given kind
func IsFetchKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}

// IsEmptyContent checks if an error is an ExtractionError caused by a page
// with no usable text
func IsEmptyContent(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr) && extractErr.Empty
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var unauthorizedErr *UnauthorizedError
	return errors.As(err, &unauthorizedErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
