package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidDate indicates a date that is not a valid "YYYY-MM-DD" calendar day
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnsupportedLanguage indicates a language code outside the supported set
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
