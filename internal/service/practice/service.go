// Package practice implements the practice lifecycle engine: creation
// with the one-open-practice-per-topic rule, answer recording,
// completion detection, and score/statistics computation at closure.
package practice

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
)

// StartResult is the outcome of starting a practice: the new practice id
// and the number of flashcards copied from the catalog.
type StartResult struct {
	PracticeID         uuid.UUID `json:"practiceId"`
	FlashcardsInserted int64     `json:"flashcardsInsertedCount"`
}

// AnswerResult is the outcome of an answer submission. Score and Stats
// are set only when the answer finished the practice.
type AnswerResult struct {
	IsCorrect bool                  `json:"isCorrect"`
	Finished  bool                  `json:"finished"`
	Score     *int                  `json:"score,omitempty"`
	Stats     *domain.PracticeStats `json:"stats,omitempty"`
}

// DeleteResult carries the record counts removed by a practice deletion.
type DeleteResult struct {
	DeletedPracticeCount  int64 `json:"deletedPracticeCount"`
	DeletedFlashcardCount int64 `json:"deletedFlashcardCount"`
}

// CatalogClient fetches the canonical flashcard set for a topic from the
// upstream catalog, forwarding the caller's bearer credential.
type CatalogClient interface {
	GetFlashcards(ctx context.Context, topicID, authorization string) ([]domain.CatalogFlashcard, error)
}

// Service is the practice lifecycle engine.
type Service interface {
	// StartPractice creates a new open practice on a topic for a user,
	// copying the topic's flashcards from the catalog.
	// Returns ErrInvalidPracticeType for a type outside the closed set and
	// an *OngoingPracticeError conflict when the topic already has an open
	// practice. Catalog failures surface as ErrCatalogUnavailable.
	StartPractice(
		ctx context.Context,
		topicID, user string,
		practiceType domain.PracticeType,
		authorization string,
	) (*StartResult, error)

	// SubmitAnswer records an answer to one flashcard of a practice. When
	// the last unanswered flashcard receives its first correct answer, the
	// practice is closed, score and statistics are computed, and a
	// practice-finished event is emitted.
	// Returns ErrFlashcardNotFound for an unknown (practice, flashcard)
	// pair and ErrFlashcardAlreadyAnswered for a terminal flashcard.
	SubmitAnswer(
		ctx context.Context,
		practiceID, flashcardID uuid.UUID,
		isCorrect bool,
	) (*AnswerResult, error)

	// DeletePractice removes a practice and every flashcard referencing
	// it, atomically, and returns the deleted counts. Deleting an unknown
	// practice yields zero counts, not an error.
	DeletePractice(ctx context.Context, practiceID uuid.UUID) (*DeleteResult, error)

	// GetPractice retrieves a single practice.
	GetPractice(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error)

	// ListPractices retrieves all practices, optionally keeping only those
	// started on or after the given YYYYMMDD calendar day.
	ListPractices(ctx context.Context, startedFrom string) ([]*domain.Practice, error)

	// ListOngoing retrieves the open practices, optionally narrowed to one
	// topic. The result is empty, never an error, when nothing is ongoing.
	ListOngoing(ctx context.Context, topicID string) ([]*domain.Practice, error)

	// ListByTopic retrieves the historical practices of a topic,
	// optionally keeping only finished ones.
	ListByTopic(ctx context.Context, topicID string, finishedOnly bool) ([]*domain.Practice, error)

	// LatestFinished retrieves the most recently finished practice of a
	// topic (latest by finish date).
	// Returns ErrPracticeNotFound when the topic has no finished practice.
	LatestFinished(ctx context.Context, topicID string) (*domain.Practice, error)

	// ListFlashcards retrieves all flashcards of a practice.
	ListFlashcards(ctx context.Context, practiceID uuid.UUID) ([]*domain.PracticeFlashcard, error)

	// GetFlashcard retrieves a single flashcard of a practice.
	GetFlashcard(ctx context.Context, practiceID, flashcardID uuid.UUID) (*domain.PracticeFlashcard, error)
}
