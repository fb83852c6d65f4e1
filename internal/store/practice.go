package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
)

// PracticeListFilter narrows the result of PracticeStore.List.
type PracticeListFilter struct {
	// StartedFrom, when non-empty, keeps only practices whose start date
	// (YYYYMMDD) is on or after this calendar day.
	StartedFrom string
}

// PracticeStore defines the interface for practice record persistence.
type PracticeStore interface {
	// Create saves a new practice record.
	// Returns ErrOpenPracticeExists if the topic already has an open
	// practice (partial unique index violation), or validation errors
	// from the domain Practice if data is invalid.
	Create(ctx context.Context, practice *domain.Practice) error

	// GetByID retrieves a practice by its unique ID.
	// Returns ErrPracticeNotFound if the practice does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Practice, error)

	// FindOpenByTopic retrieves the open (unfinished) practice on the
	// given topic, if one exists.
	// Returns ErrPracticeNotFound when the topic has no open practice.
	FindOpenByTopic(ctx context.Context, topicID string) (*domain.Practice, error)

	// FindAllOpen retrieves every open practice, most recently started first.
	FindAllOpen(ctx context.Context) ([]*domain.Practice, error)

	// FindByTopic retrieves the practices on the given topic, most
	// recently started first, optionally keeping only finished ones.
	FindByTopic(ctx context.Context, topicID string, finishedOnly bool) ([]*domain.Practice, error)

	// FindLatestFinishedByTopic retrieves the most recently finished
	// practice on the given topic (latest by finish date).
	// Returns ErrPracticeNotFound when the topic has no finished practice.
	FindLatestFinishedByTopic(ctx context.Context, topicID string) (*domain.Practice, error)

	// List retrieves practices matching the filter, most recently started first.
	List(ctx context.Context, filter PracticeListFilter) ([]*domain.Practice, error)

	// Update saves changes to an existing practice record.
	// Returns ErrPracticeNotFound if the update affects no rows.
	Update(ctx context.Context, practice *domain.Practice) error

	// Delete removes a practice record by its ID and returns the number
	// of deleted rows. Deleting a missing practice is not an error; the
	// caller observes the zero count.
	//
	// Associated flashcards are NOT removed here: the lifecycle engine
	// deletes both records inside a single transaction, so there is no
	// window in which orphan flashcards can survive a crash.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a new PracticeStore instance that uses the provided
	// transaction. This allows multiple operations to be executed within
	// a single transaction managed by the caller.
	WithTx(tx *sql.Tx) PracticeStore
}
