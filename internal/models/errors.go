package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the engine, its collaborators, and the request layer.
// Callers classify with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrExternalService  = errors.New("external service error")
)

// InvalidInputf returns an error wrapping ErrInvalidInput
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ProductNotFound returns an error wrapping ErrNotFound for an unknown nm_id
func ProductNotFound(nmID int64) error {
	return fmt.Errorf("product %d: %w", nmID, ErrNotFound)
}
