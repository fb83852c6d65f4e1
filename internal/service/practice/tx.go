package practice

import (
	"context"
	"database/sql"

	"github.com/tomehq/practice-api/internal/store"
)

// TxRunner executes a function against transactional views of the two
// stores, committing when the function returns nil and rolling back
// otherwise. The engine uses it for the operations that must touch both
// stores atomically: practice creation with its flashcard batch, and the
// cascading delete.
type TxRunner interface {
	Run(
		ctx context.Context,
		fn func(ctx context.Context, practices store.PracticeStore, flashcards store.FlashcardStore) error,
	) error
}

// sqlTxRunner is the database-backed TxRunner.
type sqlTxRunner struct {
	db         *sql.DB
	practices  store.PracticeStore
	flashcards store.FlashcardStore
}

// NewSQLTxRunner creates a TxRunner that opens transactions on the given
// database and rebinds the stores to them.
func NewSQLTxRunner(db *sql.DB, practices store.PracticeStore, flashcards store.FlashcardStore) TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}

	return &sqlTxRunner{
		db:         db,
		practices:  practices,
		flashcards: flashcards,
	}
}

// Run implements TxRunner.Run
func (r *sqlTxRunner) Run(
	ctx context.Context,
	fn func(ctx context.Context, practices store.PracticeStore, flashcards store.FlashcardStore) error,
) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.practices.WithTx(tx), r.flashcards.WithTx(tx))
	})
}
