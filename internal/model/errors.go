package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a failure of the underlying store.
	ErrPersistence = errors.New("persistence error")

	ErrValidation          = errors.New("validation failed")
	ErrUnknownIdentity     = errors.New("unknown identity")
	ErrDuplicateIdentity   = errors.New("identity already registered")
	ErrDuplicateMessage    = errors.New("message already sent")
	ErrSelfSend            = errors.New("sender and recipient are the same identity")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrRegistrationFailed is returned when a freshly inserted identity
	// cannot be read back.
	ErrRegistrationFailed = errors.New("registration failed")
)

// ValidationError describes a malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports ErrValidation so callers can match the whole category.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
