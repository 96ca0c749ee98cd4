package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a lookup against an id that is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrHasChildren blocks category deletion while other categories still
	// reference the target as their parent.
	ErrHasChildren = errors.New("category has children")

	// ErrCatalogUnavailable wraps any transport or decode failure from the
	// upstream catalog. Stores stay unpopulated when it occurs during
	// initialization so the next caller can retry.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrValidation marks malformed caller input, rejected before any store
	// access.
	ErrValidation = errors.New("invalid data")
)

// Invalidf builds a validation error with a caller-facing reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
