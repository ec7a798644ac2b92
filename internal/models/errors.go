package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every core package. Callers match with errors.Is;
// packages wrap these with context using %w.
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnreachable      = errors.New("unreachable")
	ErrOutOfRange       = errors.New("out of range")
)

// ErrUnknownAirport is a NotFound raised by route queries naming an airport
// that no flight has registered.
var ErrUnknownAirport = fmt.Errorf("unknown airport: %w", ErrNotFound)

const (
	MinPriority = 1
	MaxPriority = 3
)

func ValidatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("priority %d must be between %d and %d: %w", priority, MinPriority, MaxPriority, ErrInvalidInput)
	}
	return nil
}
