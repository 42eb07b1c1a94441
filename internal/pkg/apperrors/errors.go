package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Storage errors
	ErrStorage = errors.New("storage error")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// UserNotFound is the not-found error for a user id.
func UserNotFound(id int64) error {
	return NewResourceNotFoundError(fmt.Sprintf("User with id %d not found", id))
}

// CourseNotFound is the not-found error for a course id.
func CourseNotFound(id int64) error {
	return NewResourceNotFoundError(fmt.Sprintf("Course with id %d not found", id))
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewStorageError wraps a store failure. The cause stays reachable through
// errors.Is/As but is never part of Error().
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error carrying per-field details.
func NewValidationError(message string, details map[string]interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: details,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the category sentinel and the underlying cause.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Message returns the client-safe message of err. Storage failures and
// unclassified errors collapse to a generic text.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && !errors.Is(ce.Err, ErrStorage) {
		return ce.Error()
	}
	return "Internal server error"
}

// DetailsOf returns the details attached to err, if any.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
