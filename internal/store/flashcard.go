package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
)

// FlashcardStore defines the interface for practice flashcard persistence.
type FlashcardStore interface {
	// CreateMultiple saves a batch of practice flashcards and returns the
	// inserted count. Run it inside the same transaction that creates the
	// owning practice so a practice and its flashcard batch appear
	// atomically; use WithTx together with store.RunInTransaction.
	CreateMultiple(ctx context.Context, flashcards []*domain.PracticeFlashcard) (int64, error)

	// GetByPracticeAndID retrieves a single flashcard of a practice.
	// Returns ErrFlashcardNotFound if no flashcard matches the pair.
	GetByPracticeAndID(ctx context.Context, practiceID, flashcardID uuid.UUID) (*domain.PracticeFlashcard, error)

	// FindByPractice retrieves all flashcards of a practice, in insertion order.
	FindByPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.PracticeFlashcard, error)

	// Update saves the mutable answer-progress fields of a flashcard.
	// Returns ErrUpdateFailed if the update affects no rows: the record
	// vanished or the id pair no longer matches, which the caller must
	// treat as an internal failure.
	Update(ctx context.Context, flashcard *domain.PracticeFlashcard) error

	// CountUnanswered returns the number of flashcards of a practice that
	// have not yet been answered correctly. A zero count means the
	// practice is complete.
	CountUnanswered(ctx context.Context, practiceID uuid.UUID) (int64, error)

	// DeleteByPractice removes every flashcard of a practice and returns
	// the deleted count.
	DeleteByPractice(ctx context.Context, practiceID uuid.UUID) (int64, error)

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
