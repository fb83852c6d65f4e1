package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/events"
	"github.com/tomehq/practice-api/internal/platform/logger"
	"github.com/tomehq/practice-api/internal/store"
)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	practices  store.PracticeStore
	flashcards store.FlashcardStore
	catalog    CatalogClient
	txRunner   TxRunner
	emitter    events.EventEmitter
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new practice lifecycle Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	practices store.PracticeStore,
	flashcards store.FlashcardStore,
	catalog CatalogClient,
	txRunner TxRunner,
	emitter events.EventEmitter,
	log *slog.Logger,
) (Service, error) {
	if practices == nil {
		return nil, errors.New("practice store cannot be nil")
	}
	if flashcards == nil {
		return nil, errors.New("flashcard store cannot be nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog client cannot be nil")
	}
	if txRunner == nil {
		return nil, errors.New("transaction runner cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		practices:  practices,
		flashcards: flashcards,
		catalog:    catalog,
		txRunner:   txRunner,
		emitter:    emitter,
		logger:     log.With(slog.String("component", "practice_service")),
		now:        time.Now,
	}, nil
}

// StartPractice implements Service.StartPractice
func (s *serviceImpl) StartPractice(
	ctx context.Context,
	topicID, user string,
	practiceType domain.PracticeType,
	authorization string,
) (*StartResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !practiceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPracticeType, practiceType)
	}

	// Cheap pre-check so the common conflict case never reaches the
	// catalog. The partial unique index remains the authority on races.
	if open, err := s.practices.FindOpenByTopic(ctx, topicID); err == nil {
		return nil, &OngoingPracticeError{TopicID: topicID, PracticeID: open.ID}
	} else if !store.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check for ongoing practice: %w", err)
	}

	cards, err := s.catalog.GetFlashcards(ctx, topicID, authorization)
	if err != nil {
		log.Error("failed to fetch flashcards from catalog",
			slog.String("error", err.Error()),
			slog.String("topic_id", topicID))
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	prac, err := domain.NewPractice(topicID, user, practiceType)
	if err != nil {
		return nil, fmt.Errorf("failed to build practice: %w", err)
	}

	batch := make([]*domain.PracticeFlashcard, 0, len(cards))
	for _, card := range cards {
		fc, err := domain.NewPracticeFlashcard(prac.ID, card)
		if err != nil {
			return nil, fmt.Errorf("failed to copy catalog flashcard: %w", err)
		}
		batch = append(batch, fc)
	}

	var inserted int64
	err = s.txRunner.Run(ctx, func(ctx context.Context, practices store.PracticeStore, flashcards store.FlashcardStore) error {
		if err := practices.Create(ctx, prac); err != nil {
			return err
		}
		n, err := flashcards.CreateMultiple(ctx, batch)
		if err != nil {
			return err
		}
		inserted = n
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrOpenPracticeExists) {
			// Lost the race with a concurrent start. Name the winner when
			// it is still visible.
			conflict := &OngoingPracticeError{TopicID: topicID}
			if open, findErr := s.practices.FindOpenByTopic(ctx, topicID); findErr == nil {
				conflict.PracticeID = open.ID
			}
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to create practice: %w", err)
	}

	log.Info("practice started",
		slog.String("practice_id", prac.ID.String()),
		slog.String("topic_id", topicID),
		slog.String("practice_type", string(practiceType)),
		slog.Int64("flashcards_inserted", inserted))

	return &StartResult{PracticeID: prac.ID, FlashcardsInserted: inserted}, nil
}

// SubmitAnswer implements Service.SubmitAnswer
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	practiceID, flashcardID uuid.UUID,
	isCorrect bool,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fc, err := s.flashcards.GetByPracticeAndID(ctx, practiceID, flashcardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s of practice %s", ErrFlashcardNotFound, flashcardID, practiceID)
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}

	if err := fc.Answer(isCorrect, s.now()); err != nil {
		if errors.Is(err, domain.ErrFlashcardAlreadyAnswered) {
			return nil, fmt.Errorf("%w: %s", ErrFlashcardAlreadyAnswered, flashcardID)
		}
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	if err := s.flashcards.Update(ctx, fc); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	result := &AnswerResult{IsCorrect: isCorrect}

	// A wrong answer can never finish the practice.
	if !isCorrect {
		return result, nil
	}

	remaining, err := s.flashcards.CountUnanswered(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unanswered flashcards: %w", err)
	}
	if remaining > 0 {
		return result, nil
	}

	prac, err := s.closePractice(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	result.Finished = true
	result.Score = prac.Score
	result.Stats = prac.Stats

	log.Info("practice finished",
		slog.String("practice_id", practiceID.String()),
		slog.Int("score", *prac.Score))

	s.emitPracticeFinished(ctx, prac)

	return result, nil
}

// closePractice performs the open-to-closed transition: it recomputes the
// score and statistics from the full flashcard set and persists them.
func (s *serviceImpl) closePractice(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error) {
	prac, err := s.practices.GetByID(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get practice for closing: %w", err)
	}

	all, err := s.flashcards.FindByPractice(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards for closing: %w", err)
	}

	if err := prac.Close(all, s.now()); err != nil {
		return nil, fmt.Errorf("failed to close practice: %w", err)
	}

	if err := s.practices.Update(ctx, prac); err != nil {
		return nil, fmt.Errorf("failed to save closed practice: %w", err)
	}

	return prac, nil
}

// emitPracticeFinished publishes the practice-finished event. Emission
// failures are logged, never surfaced: the practice is already closed and
// the answer result must reach the caller.
func (s *serviceImpl) emitPracticeFinished(ctx context.Context, prac *domain.Practice) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewPracticeFinishedEvent(prac)
	if err != nil {
		log.Error("failed to build practice finished event",
			slog.String("error", err.Error()),
			slog.String("practice_id", prac.ID.String()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit practice finished event",
			slog.String("error", err.Error()),
			slog.String("practice_id", prac.ID.String()))
	}
}

// DeletePractice implements Service.DeletePractice
func (s *serviceImpl) DeletePractice(ctx context.Context, practiceID uuid.UUID) (*DeleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := &DeleteResult{}
	err := s.txRunner.Run(ctx, func(ctx context.Context, practices store.PracticeStore, flashcards store.FlashcardStore) error {
		deletedCards, err := flashcards.DeleteByPractice(ctx, practiceID)
		if err != nil {
			return err
		}
		deletedPractices, err := practices.Delete(ctx, practiceID)
		if err != nil {
			return err
		}
		result.DeletedPracticeCount = deletedPractices
		result.DeletedFlashcardCount = deletedCards
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete practice: %w", err)
	}

	log.Info("practice deleted",
		slog.String("practice_id", practiceID.String()),
		slog.Int64("deleted_practices", result.DeletedPracticeCount),
		slog.Int64("deleted_flashcards", result.DeletedFlashcardCount))

	return result, nil
}

// GetPractice implements Service.GetPractice
func (s *serviceImpl) GetPractice(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error) {
	prac, err := s.practices.GetByID(ctx, practiceID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPracticeNotFound, practiceID)
		}
		return nil, fmt.Errorf("failed to get practice: %w", err)
	}
	return prac, nil
}

// ListPractices implements Service.ListPractices
func (s *serviceImpl) ListPractices(ctx context.Context, startedFrom string) ([]*domain.Practice, error) {
	list, err := s.practices.List(ctx, store.PracticeListFilter{StartedFrom: startedFrom})
	if err != nil {
		return nil, fmt.Errorf("failed to list practices: %w", err)
	}
	return list, nil
}

// ListOngoing implements Service.ListOngoing
func (s *serviceImpl) ListOngoing(ctx context.Context, topicID string) ([]*domain.Practice, error) {
	if topicID == "" {
		list, err := s.practices.FindAllOpen(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list ongoing practices: %w", err)
		}
		return list, nil
	}

	open, err := s.practices.FindOpenByTopic(ctx, topicID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return []*domain.Practice{}, nil
		}
		return nil, fmt.Errorf("failed to find ongoing practice: %w", err)
	}
	return []*domain.Practice{open}, nil
}

// ListByTopic implements Service.ListByTopic
func (s *serviceImpl) ListByTopic(ctx context.Context, topicID string, finishedOnly bool) ([]*domain.Practice, error) {
	list, err := s.practices.FindByTopic(ctx, topicID, finishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list practices by topic: %w", err)
	}
	return list, nil
}

// LatestFinished implements Service.LatestFinished
func (s *serviceImpl) LatestFinished(ctx context.Context, topicID string) (*domain.Practice, error) {
	prac, err := s.practices.FindLatestFinishedByTopic(ctx, topicID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: no finished practice on topic %s", ErrPracticeNotFound, topicID)
		}
		return nil, fmt.Errorf("failed to find latest finished practice: %w", err)
	}
	return prac, nil
}

// ListFlashcards implements Service.ListFlashcards
func (s *serviceImpl) ListFlashcards(ctx context.Context, practiceID uuid.UUID) ([]*domain.PracticeFlashcard, error) {
	list, err := s.flashcards.FindByPractice(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return list, nil
}

// GetFlashcard implements Service.GetFlashcard
func (s *serviceImpl) GetFlashcard(ctx context.Context, practiceID, flashcardID uuid.UUID) (*domain.PracticeFlashcard, error) {
	fc, err := s.flashcards.GetByPracticeAndID(ctx, practiceID, flashcardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s of practice %s", ErrFlashcardNotFound, flashcardID, practiceID)
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}
	return fc, nil
}
