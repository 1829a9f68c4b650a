package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrFileNotFound    = fmt.Errorf("%w: file", ErrNotFound)

	// Mutation errors
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrInvalidPayload  = errors.New("row payload must be a key-value object")

	// Ingestion errors
	ErrParseFailure = errors.New("failed to parse spreadsheet")
	ErrFileTooLarge = errors.New("file exceeds upload limit")
)

// Error constructors with context
func NewNotFoundError(resource string, name string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, name)
}

func NewIndexError(index, length int) error {
	return fmt.Errorf("%w: index %d, row count %d", ErrIndexOutOfRange, index, length)
}

// NewParseError keeps the parser's error opaque; callers only match ErrParseFailure.
func NewParseError(name string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrParseFailure, name, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsIndexError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
