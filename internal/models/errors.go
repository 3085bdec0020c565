package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist in storage.
var ErrNotFound = errors.New("record not found")

// ValidationError reports an input that fails a precondition. It is raised
// before any persistence attempt and carries the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
