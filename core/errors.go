package core

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a command with the requested identity does not exist
var ErrNotFound = errors.New("not found")

// ErrValidation marks input that failed validation
var ErrValidation = errors.New("validation failed")

// IsNotFoundError checks if an error is a "not found" error.
// Errors surfaced by sql drivers as plain strings are matched on their message.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// IsValidationError checks if an error wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && errors.Is(err, ErrValidation)
}
