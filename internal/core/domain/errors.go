package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrUserNotFound     = errors.New("user not found")
	ErrResourceNotFound = errors.New("resource not found")

	ErrEmailTaken        = errors.New("email already in use")
	ErrUserOwnsResources = errors.New("user still owns resources")
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input is malformed or out of range.
// It is always produced before any storage access.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(msgs, "; "))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Denied wraps ErrForbidden with the reason for the denial.
func Denied(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
