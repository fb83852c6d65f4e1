package practice

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service-level errors returned by the practice lifecycle engine.
var (
	// ErrInvalidPracticeType is returned when a practice type outside the
	// supported closed set is requested.
	ErrInvalidPracticeType = errors.New("invalid practice type")

	// ErrPracticeNotFound is returned when the requested practice does not exist.
	ErrPracticeNotFound = errors.New("practice not found")

	// ErrFlashcardNotFound is returned when the requested flashcard does
	// not exist for the practice.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrFlashcardAlreadyAnswered is returned when answering a flashcard
	// that was already answered correctly.
	ErrFlashcardAlreadyAnswered = errors.New("flashcard already answered")

	// ErrOngoingPractice is returned when starting a practice on a topic
	// that already has an open practice. Callers needing the existing
	// practice id can unwrap an *OngoingPracticeError.
	ErrOngoingPractice = errors.New("ongoing practice on topic")

	// ErrCatalogUnavailable is returned when the flashcard catalog cannot
	// be reached or returns an error.
	ErrCatalogUnavailable = errors.New("flashcard catalog unavailable")
)

// OngoingPracticeError is the conflict returned by StartPractice when the
// topic already has an open practice. It names the existing practice so
// clients can surface it.
type OngoingPracticeError struct {
	TopicID    string
	PracticeID uuid.UUID
}

// Error implements the error interface for OngoingPracticeError.
func (e *OngoingPracticeError) Error() string {
	if e.PracticeID == uuid.Nil {
		return fmt.Sprintf("ongoing practice found on topic %s. Close that one first.", e.TopicID)
	}
	return fmt.Sprintf(
		"ongoing practice found: [ %s ] on topic %s. Close that one first.",
		e.PracticeID,
		e.TopicID,
	)
}

// Unwrap supports errors.Is checks against ErrOngoingPractice.
func (e *OngoingPracticeError) Unwrap() error {
	return ErrOngoingPractice
}
