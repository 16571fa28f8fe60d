// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrNoCredential = errors.New("no credential available")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError indicates a malformed or incomplete request that was
// rejected before reaching the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// CycleError indicates a category parent assignment that would make the
// category its own ancestor.
type CycleError struct {
	CategoryID int64
	ParentID   int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("category %d cannot have %d as parent: cycle detected", e.CategoryID, e.ParentID)
}

// AuthError indicates the backend rejected the bearer credential.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return e.Detail
}

// TransportError indicates a network failure or an unparseable response.
// The wrapped error carries the underlying cause.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response whose body could be parsed. Detail holds
// the backend's message verbatim so the UI can show it unmodified.
type APIError struct {
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
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

// UserMessage extracts the message to show for err: backend detail where
// available, otherwise the plain error text.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
