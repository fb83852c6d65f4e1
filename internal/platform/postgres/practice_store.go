package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/platform/logger"
	"github.com/tomehq/practice-api/internal/store"
)

// practiceColumns is the column list shared by every practice query.
const practiceColumns = `id, topic_id, user_email, practice_type, started_on, finished_on,
	score, num_cards, total_wrong_answers, average_attempts, created_at, updated_at`

// PostgresPracticeStore implements the store.PracticeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPracticeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPracticeStore creates a new PostgreSQL implementation of the
// PracticeStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPracticeStore(db store.DBTX, logger *slog.Logger) *PostgresPracticeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPracticeStore{
		db:     db,
		logger: logger.With(slog.String("component", "practice_store")),
	}
}

// Ensure PostgresPracticeStore implements store.PracticeStore interface
var _ store.PracticeStore = (*PostgresPracticeStore)(nil)

// WithTx implements store.PracticeStore.WithTx
func (s *PostgresPracticeStore) WithTx(tx *sql.Tx) store.PracticeStore {
	return &PostgresPracticeStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PracticeStore.Create
// It saves a new practice record, handling domain validation.
// Returns store.ErrOpenPracticeExists when the partial unique index over
// open practices rejects a second ongoing practice on the same topic.
func (s *PostgresPracticeStore) Create(ctx context.Context, practice *domain.Practice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := practice.Validate(); err != nil {
		log.Warn("practice validation failed during create",
			slog.String("error", err.Error()),
			slog.String("practice_id", practice.ID.String()))
		return err
	}

	query := `
		INSERT INTO practices (id, topic_id, user_email, practice_type, started_on,
			finished_on, score, num_cards, total_wrong_answers, average_attempts,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		practice.ID,
		practice.TopicID,
		practice.User,
		practice.Type,
		practice.StartedOn,
		nullString(practice.FinishedOn),
		nullScore(practice.Score),
		nullStatsInt(practice.Stats, func(st *domain.PracticeStats) int { return st.NumCards }),
		nullStatsInt(practice.Stats, func(st *domain.PracticeStats) int { return st.TotalWrongAnswers }),
		nullStatsFloat(practice.Stats),
		practice.CreatedAt,
		practice.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		log.Error("failed to create practice",
			slog.String("error", err.Error()),
			slog.String("practice_id", practice.ID.String()),
			slog.String("topic_id", practice.TopicID))
		return mapped
	}

	log.Info("practice created successfully",
		slog.String("practice_id", practice.ID.String()),
		slog.String("topic_id", practice.TopicID),
		slog.String("practice_type", string(practice.Type)))
	return nil
}

// GetByID implements store.PracticeStore.GetByID
// Returns store.ErrPracticeNotFound if the practice does not exist.
func (s *PostgresPracticeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices WHERE id = $1`

	practice, err := scanPractice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPracticeNotFound
		}
		return nil, MapError(err)
	}

	return practice, nil
}

// FindOpenByTopic implements store.PracticeStore.FindOpenByTopic
// Returns store.ErrPracticeNotFound when the topic has no open practice.
func (s *PostgresPracticeStore) FindOpenByTopic(ctx context.Context, topicID string) (*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices
		WHERE topic_id = $1 AND finished_on IS NULL`

	practice, err := scanPractice(s.db.QueryRowContext(ctx, query, topicID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPracticeNotFound
		}
		return nil, MapError(err)
	}

	return practice, nil
}

// FindAllOpen implements store.PracticeStore.FindAllOpen
func (s *PostgresPracticeStore) FindAllOpen(ctx context.Context) ([]*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices
		WHERE finished_on IS NULL
		ORDER BY started_on DESC, created_at DESC`

	return s.queryPractices(ctx, query)
}

// FindByTopic implements store.PracticeStore.FindByTopic
func (s *PostgresPracticeStore) FindByTopic(
	ctx context.Context,
	topicID string,
	finishedOnly bool,
) ([]*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices
		WHERE topic_id = $1 AND ($2 = false OR finished_on IS NOT NULL)
		ORDER BY started_on DESC, created_at DESC`

	return s.queryPractices(ctx, query, topicID, finishedOnly)
}

// FindLatestFinishedByTopic implements store.PracticeStore.FindLatestFinishedByTopic
// Returns store.ErrPracticeNotFound when the topic has no finished practice.
func (s *PostgresPracticeStore) FindLatestFinishedByTopic(
	ctx context.Context,
	topicID string,
) (*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices
		WHERE topic_id = $1 AND finished_on IS NOT NULL
		ORDER BY finished_on DESC, updated_at DESC
		LIMIT 1`

	practice, err := scanPractice(s.db.QueryRowContext(ctx, query, topicID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPracticeNotFound
		}
		return nil, MapError(err)
	}

	return practice, nil
}

// List implements store.PracticeStore.List
func (s *PostgresPracticeStore) List(
	ctx context.Context,
	filter store.PracticeListFilter,
) ([]*domain.Practice, error) {
	query := `SELECT ` + practiceColumns + ` FROM practices
		WHERE ($1 = '' OR started_on >= $1)
		ORDER BY started_on DESC, created_at DESC`

	return s.queryPractices(ctx, query, filter.StartedFrom)
}

// Update implements store.PracticeStore.Update
// It persists the closing fields of a practice (finish date, score, stats).
// Returns store.ErrPracticeNotFound if the update affects no rows.
func (s *PostgresPracticeStore) Update(ctx context.Context, practice *domain.Practice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE practices
		SET finished_on = $1, score = $2, num_cards = $3, total_wrong_answers = $4,
			average_attempts = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		nullString(practice.FinishedOn),
		nullScore(practice.Score),
		nullStatsInt(practice.Stats, func(st *domain.PracticeStats) int { return st.NumCards }),
		nullStatsInt(practice.Stats, func(st *domain.PracticeStats) int { return st.TotalWrongAnswers }),
		nullStatsFloat(practice.Stats),
		practice.UpdatedAt,
		practice.ID,
	)
	if err != nil {
		log.Error("failed to update practice",
			slog.String("error", err.Error()),
			slog.String("practice_id", practice.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("practice_id", practice.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("practice not found for update",
			slog.String("practice_id", practice.ID.String()))
		return store.ErrPracticeNotFound
	}

	log.Info("practice updated successfully",
		slog.String("practice_id", practice.ID.String()),
		slog.String("finished_on", practice.FinishedOn))
	return nil
}

// Delete implements store.PracticeStore.Delete
func (s *PostgresPracticeStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM practices WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete practice",
			slog.String("error", err.Error()),
			slog.String("practice_id", id.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("practice deleted",
		slog.String("practice_id", id.String()),
		slog.Int64("deleted_count", deleted))
	return deleted, nil
}

// queryPractices runs a multi-row practice query and scans the results.
func (s *PostgresPracticeStore) queryPractices(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Practice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	practices := make([]*domain.Practice, 0)
	for rows.Next() {
		practice, err := scanPractice(rows)
		if err != nil {
			return nil, MapError(err)
		}
		practices = append(practices, practice)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return practices, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPractice scans one practice row, translating nullable columns into
// the optional domain fields.
func scanPractice(row rowScanner) (*domain.Practice, error) {
	var (
		practice        domain.Practice
		finishedOn      sql.NullString
		score           sql.NullInt64
		numCards        sql.NullInt64
		totalWrong      sql.NullInt64
		averageAttempts sql.NullFloat64
	)

	err := row.Scan(
		&practice.ID,
		&practice.TopicID,
		&practice.User,
		&practice.Type,
		&practice.StartedOn,
		&finishedOn,
		&score,
		&numCards,
		&totalWrong,
		&averageAttempts,
		&practice.CreatedAt,
		&practice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finishedOn.Valid {
		practice.FinishedOn = finishedOn.String
	}
	if score.Valid {
		value := int(score.Int64)
		practice.Score = &value
	}
	if numCards.Valid {
		practice.Stats = &domain.PracticeStats{
			NumCards:          int(numCards.Int64),
			TotalWrongAnswers: int(totalWrong.Int64),
			AverageAttempts:   averageAttempts.Float64,
		}
	}

	return &practice, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullScore converts an optional score to a nullable column value.
func nullScore(score *int) sql.NullInt64 {
	if score == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*score), Valid: true}
}

// nullStatsInt extracts an int stats field, or NULL when stats are absent.
func nullStatsInt(stats *domain.PracticeStats, field func(*domain.PracticeStats) int) sql.NullInt64 {
	if stats == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(field(stats)), Valid: true}
}

// nullStatsFloat extracts the average-attempts field, or NULL when stats are absent.
func nullStatsFloat(stats *domain.PracticeStats) sql.NullFloat64 {
	if stats == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: stats.AverageAttempts, Valid: true}
}
