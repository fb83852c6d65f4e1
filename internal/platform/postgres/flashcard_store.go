package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/platform/logger"
	"github.com/tomehq/practice-api/internal/store"
)

const flashcardColumns = `id, practice_id, content, num_wrong_answers,
	correctly_answered_at, created_at, updated_at`

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of
// the FlashcardStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
// It saves the flashcard batch copied from the catalog at practice
// creation time and returns the inserted count. Run inside the same
// transaction as the practice insert.
func (s *PostgresFlashcardStore) CreateMultiple(
	ctx context.Context,
	flashcards []*domain.PracticeFlashcard,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO practice_flashcards (id, practice_id, content, num_wrong_answers,
			correctly_answered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var inserted int64
	for _, flashcard := range flashcards {
		if err := flashcard.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", flashcard.ID.String()))
			return inserted, err
		}

		_, err := s.db.ExecContext(
			ctx,
			query,
			flashcard.ID,
			flashcard.PracticeID,
			[]byte(flashcard.Content),
			flashcard.NumWrongAnswers,
			nullString(flashcard.CorrectlyAnsweredAt),
			flashcard.CreatedAt,
			flashcard.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to insert flashcard",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", flashcard.ID.String()),
				slog.String("practice_id", flashcard.PracticeID.String()))
			return inserted, MapError(err)
		}
		inserted++
	}

	log.Info("flashcard batch created",
		slog.Int64("inserted_count", inserted))
	return inserted, nil
}

// GetByPracticeAndID implements store.FlashcardStore.GetByPracticeAndID
// Returns store.ErrFlashcardNotFound if no flashcard matches the pair.
func (s *PostgresFlashcardStore) GetByPracticeAndID(
	ctx context.Context,
	practiceID, flashcardID uuid.UUID,
) (*domain.PracticeFlashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM practice_flashcards
		WHERE practice_id = $1 AND id = $2`

	flashcard, err := scanFlashcard(s.db.QueryRowContext(ctx, query, practiceID, flashcardID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}

	return flashcard, nil
}

// FindByPractice implements store.FlashcardStore.FindByPractice
func (s *PostgresFlashcardStore) FindByPractice(
	ctx context.Context,
	practiceID uuid.UUID,
) ([]*domain.PracticeFlashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM practice_flashcards
		WHERE practice_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, practiceID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	flashcards := make([]*domain.PracticeFlashcard, 0)
	for rows.Next() {
		flashcard, err := scanFlashcard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		flashcards = append(flashcards, flashcard)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return flashcards, nil
}

// Update implements store.FlashcardStore.Update
// It persists the mutable answer-progress fields. A zero-row update means
// the record vanished or the id pair no longer matches; it is reported as
// store.ErrUpdateFailed so the caller can surface an internal failure.
func (s *PostgresFlashcardStore) Update(ctx context.Context, flashcard *domain.PracticeFlashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE practice_flashcards
		SET num_wrong_answers = $1, correctly_answered_at = $2, updated_at = $3
		WHERE id = $4 AND practice_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		flashcard.NumWrongAnswers,
		nullString(flashcard.CorrectlyAnsweredAt),
		flashcard.UpdatedAt,
		flashcard.ID,
		flashcard.PracticeID,
	)
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", flashcard.ID.String()),
			slog.String("practice_id", flashcard.PracticeID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", flashcard.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Error("flashcard update affected no rows",
			slog.String("flashcard_id", flashcard.ID.String()),
			slog.String("practice_id", flashcard.PracticeID.String()))
		return fmt.Errorf("%w: flashcard %s of practice %s",
			store.ErrUpdateFailed, flashcard.ID, flashcard.PracticeID)
	}

	log.Debug("flashcard updated successfully",
		slog.String("flashcard_id", flashcard.ID.String()),
		slog.Int("num_wrong_answers", flashcard.NumWrongAnswers),
		slog.Bool("answered", flashcard.IsAnswered()))
	return nil
}

// CountUnanswered implements store.FlashcardStore.CountUnanswered
func (s *PostgresFlashcardStore) CountUnanswered(ctx context.Context, practiceID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM practice_flashcards
		WHERE practice_id = $1 AND correctly_answered_at IS NULL`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, practiceID).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// DeleteByPractice implements store.FlashcardStore.DeleteByPractice
func (s *PostgresFlashcardStore) DeleteByPractice(ctx context.Context, practiceID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM practice_flashcards WHERE practice_id = $1`,
		practiceID,
	)
	if err != nil {
		log.Error("failed to delete practice flashcards",
			slog.String("error", err.Error()),
			slog.String("practice_id", practiceID.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("practice flashcards deleted",
		slog.String("practice_id", practiceID.String()),
		slog.Int64("deleted_count", deleted))
	return deleted, nil
}

// scanFlashcard scans one flashcard row.
func scanFlashcard(row rowScanner) (*domain.PracticeFlashcard, error) {
	var (
		flashcard  domain.PracticeFlashcard
		content    []byte
		answeredAt sql.NullString
	)

	err := row.Scan(
		&flashcard.ID,
		&flashcard.PracticeID,
		&content,
		&flashcard.NumWrongAnswers,
		&answeredAt,
		&flashcard.CreatedAt,
		&flashcard.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	flashcard.Content = content
	if answeredAt.Valid {
		flashcard.CorrectlyAnsweredAt = answeredAt.String
	}

	return &flashcard, nil
}
