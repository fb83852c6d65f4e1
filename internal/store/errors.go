package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second open practice on a topic).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation affects no rows.
	// Callers must treat this as an internal failure, never a silent no-op.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrPracticeNotFound indicates that the requested practice does not exist in the store.
	ErrPracticeNotFound = fmt.Errorf("%w: practice", ErrNotFound)

	// ErrFlashcardNotFound indicates that the requested practice flashcard
	// does not exist in the store.
	ErrFlashcardNotFound = fmt.Errorf("%w: flashcard", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrOpenPracticeExists indicates that the topic already has an open
	// practice. The store enforces this with a partial unique index over
	// open practices, so the error is authoritative even under concurrent
	// creation attempts.
	ErrOpenPracticeExists = fmt.Errorf("%w: open practice on topic", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
