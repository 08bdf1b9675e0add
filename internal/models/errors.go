package models

import "errors"

// Domain errors, wrapped with context where they occur and matched with
// errors.Is at the HTTP boundary.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
)
