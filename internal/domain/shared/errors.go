// Package shared contains common domain types, errors, events and the lookup
// result type used across all domain packages.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound = errors.New("entity not found")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidFormat = errors.New("invalid format")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptedSnapshot  = errors.New("corrupted snapshot")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "hobby", "project", "gamification"
	Op      string // Operation that failed, e.g., "Find", "Toggle"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Hobby graph errors
var (
	ErrHobbyNotFound   = NewDomainError("hobby", "Find", ErrNotFound, "hobby not found")
	ErrProjectNotFound = NewDomainError("project", "Find", ErrNotFound, "project not found")
	ErrTaskNotFound    = NewDomainError("task", "Find", ErrNotFound, "task not found")
	ErrSessionNotFound = NewDomainError("session", "Find", ErrNotFound, "session not found")
	ErrIdeaNotFound    = NewDomainError("idea", "Find", ErrNotFound, "idea not found")
)

// Validation errors for host input
var (
	ErrUnknownCategory  = NewDomainError("hobby", "ParseCategory", ErrInvalidInput, "unknown hobby category")
	ErrUnknownPriority  = NewDomainError("task", "ParsePriority", ErrInvalidInput, "unknown task priority")
	ErrUnknownTimeRange = NewDomainError("analytics", "ParseRange", ErrInvalidInput, "unknown time range")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsStorage checks if the error came from the persistence layer.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrCorruptedSnapshot)
}
