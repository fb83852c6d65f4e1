package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrPracticeIDEmpty is returned when a practice ID is empty or nil.
	ErrPracticeIDEmpty = errors.New("practice ID cannot be empty")

	// ErrPracticeTopicEmpty is returned when a practice has no topic.
	ErrPracticeTopicEmpty = errors.New("practice topic cannot be empty")

	// ErrPracticeUserEmpty is returned when a practice has no owning user.
	ErrPracticeUserEmpty = errors.New("practice user cannot be empty")

	// ErrPracticeTypeInvalid is returned when a practice type is not one
	// of the supported types.
	ErrPracticeTypeInvalid = errors.New("invalid practice type")

	// ErrPracticeAlreadyFinished is returned when attempting to close a
	// practice that already has a finish date.
	ErrPracticeAlreadyFinished = errors.New("practice is already finished")

	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardPracticeIDEmpty is returned when a flashcard does not
	// reference an owning practice.
	ErrFlashcardPracticeIDEmpty = errors.New("flashcard practice ID cannot be empty")

	// ErrFlashcardContentEmpty is returned when a flashcard's content copy is empty.
	ErrFlashcardContentEmpty = errors.New("flashcard content cannot be empty")

	// ErrFlashcardContentInvalid is returned when a flashcard's content is not valid JSON.
	ErrFlashcardContentInvalid = errors.New("flashcard content must be valid JSON")

	// ErrFlashcardAlreadyAnswered is returned when answering a flashcard
	// that was already answered correctly. Correctly answered flashcards
	// are immutable.
	ErrFlashcardAlreadyAnswered = errors.New("flashcard already answered")
)
