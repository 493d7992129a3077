package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNotRecipient = errors.New("only the recipient can reveal a note")
)

// NewValidationError reports a missing or malformed field. The result matches
// ErrValidation with errors.Is.
func NewValidationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
