package practice

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/events"
	"github.com/tomehq/practice-api/internal/store"
)

// fakePracticeStore is an in-memory store.PracticeStore. It mimics the
// database contract: returned records are copies, and Create enforces
// the open-practice uniqueness the way the partial unique index does.
type fakePracticeStore struct {
	mu        sync.Mutex
	practices map[uuid.UUID]*domain.Practice

	// Error overrides for failure-path tests
	createErr error
	updateErr error
}

func newFakePracticeStore() *fakePracticeStore {
	return &fakePracticeStore{practices: make(map[uuid.UUID]*domain.Practice)}
}

func clonePractice(p *domain.Practice) *domain.Practice {
	cp := *p
	if p.Score != nil {
		score := *p.Score
		cp.Score = &score
	}
	if p.Stats != nil {
		stats := *p.Stats
		cp.Stats = &stats
	}
	return &cp
}

func (s *fakePracticeStore) Create(ctx context.Context, practice *domain.Practice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.practices {
		if existing.TopicID == practice.TopicID && !existing.IsFinished() {
			return fmt.Errorf("%w: topic %s", store.ErrOpenPracticeExists, practice.TopicID)
		}
	}
	s.practices[practice.ID] = clonePractice(practice)
	return nil
}

func (s *fakePracticeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.practices[id]
	if !ok {
		return nil, store.ErrPracticeNotFound
	}
	return clonePractice(p), nil
}

func (s *fakePracticeStore) FindOpenByTopic(ctx context.Context, topicID string) (*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.practices {
		if p.TopicID == topicID && !p.IsFinished() {
			return clonePractice(p), nil
		}
	}
	return nil, store.ErrPracticeNotFound
}

func (s *fakePracticeStore) FindAllOpen(ctx context.Context) ([]*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Practice
	for _, p := range s.practices {
		if !p.IsFinished() {
			result = append(result, clonePractice(p))
		}
	}
	sortPractices(result)
	return result, nil
}

func (s *fakePracticeStore) FindByTopic(
	ctx context.Context,
	topicID string,
	finishedOnly bool,
) ([]*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Practice
	for _, p := range s.practices {
		if p.TopicID != topicID {
			continue
		}
		if finishedOnly && !p.IsFinished() {
			continue
		}
		result = append(result, clonePractice(p))
	}
	sortPractices(result)
	return result, nil
}

func (s *fakePracticeStore) FindLatestFinishedByTopic(
	ctx context.Context,
	topicID string,
) (*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *domain.Practice
	for _, p := range s.practices {
		if p.TopicID != topicID || !p.IsFinished() {
			continue
		}
		if latest == nil || p.FinishedOn > latest.FinishedOn {
			latest = p
		}
	}
	if latest == nil {
		return nil, store.ErrPracticeNotFound
	}
	return clonePractice(latest), nil
}

func (s *fakePracticeStore) List(
	ctx context.Context,
	filter store.PracticeListFilter,
) ([]*domain.Practice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Practice
	for _, p := range s.practices {
		if filter.StartedFrom != "" && p.StartedOn < filter.StartedFrom {
			continue
		}
		result = append(result, clonePractice(p))
	}
	sortPractices(result)
	return result, nil
}

func (s *fakePracticeStore) Update(ctx context.Context, practice *domain.Practice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.practices[practice.ID]; !ok {
		return store.ErrPracticeNotFound
	}
	s.practices[practice.ID] = clonePractice(practice)
	return nil
}

func (s *fakePracticeStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.practices[id]; !ok {
		return 0, nil
	}
	delete(s.practices, id)
	return 1, nil
}

func (s *fakePracticeStore) WithTx(tx *sql.Tx) store.PracticeStore {
	return s
}

func (s *fakePracticeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.practices)
}

func sortPractices(list []*domain.Practice) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedOn != list[j].StartedOn {
			return list[i].StartedOn > list[j].StartedOn
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// fakeFlashcardStore is an in-memory store.FlashcardStore.
type fakeFlashcardStore struct {
	mu         sync.Mutex
	flashcards map[uuid.UUID]*domain.PracticeFlashcard
	order      []uuid.UUID

	createErr error
	updateErr error
}

func newFakeFlashcardStore() *fakeFlashcardStore {
	return &fakeFlashcardStore{flashcards: make(map[uuid.UUID]*domain.PracticeFlashcard)}
}

func cloneFlashcard(f *domain.PracticeFlashcard) *domain.PracticeFlashcard {
	cp := *f
	cp.Content = append([]byte(nil), f.Content...)
	return &cp
}

func (s *fakeFlashcardStore) CreateMultiple(
	ctx context.Context,
	flashcards []*domain.PracticeFlashcard,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return 0, s.createErr
	}
	for _, f := range flashcards {
		s.flashcards[f.ID] = cloneFlashcard(f)
		s.order = append(s.order, f.ID)
	}
	return int64(len(flashcards)), nil
}

func (s *fakeFlashcardStore) GetByPracticeAndID(
	ctx context.Context,
	practiceID, flashcardID uuid.UUID,
) (*domain.PracticeFlashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flashcards[flashcardID]
	if !ok || f.PracticeID != practiceID {
		return nil, store.ErrFlashcardNotFound
	}
	return cloneFlashcard(f), nil
}

func (s *fakeFlashcardStore) FindByPractice(
	ctx context.Context,
	practiceID uuid.UUID,
) ([]*domain.PracticeFlashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.PracticeFlashcard
	for _, id := range s.order {
		f := s.flashcards[id]
		if f != nil && f.PracticeID == practiceID {
			result = append(result, cloneFlashcard(f))
		}
	}
	return result, nil
}

func (s *fakeFlashcardStore) Update(ctx context.Context, flashcard *domain.PracticeFlashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	existing, ok := s.flashcards[flashcard.ID]
	if !ok || existing.PracticeID != flashcard.PracticeID {
		return fmt.Errorf("%w: flashcard %s", store.ErrUpdateFailed, flashcard.ID)
	}
	s.flashcards[flashcard.ID] = cloneFlashcard(flashcard)
	return nil
}

func (s *fakeFlashcardStore) CountUnanswered(
	ctx context.Context,
	practiceID uuid.UUID,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, f := range s.flashcards {
		if f.PracticeID == practiceID && !f.IsAnswered() {
			count++
		}
	}
	return count, nil
}

func (s *fakeFlashcardStore) DeleteByPractice(
	ctx context.Context,
	practiceID uuid.UUID,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, f := range s.flashcards {
		if f.PracticeID == practiceID {
			delete(s.flashcards, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return s
}

func (s *fakeFlashcardStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flashcards)
}

// fakeTxRunner runs the function against the fakes directly, without a
// real transaction.
type fakeTxRunner struct {
	practices  store.PracticeStore
	flashcards store.FlashcardStore
}

func (r *fakeTxRunner) Run(
	ctx context.Context,
	fn func(ctx context.Context, practices store.PracticeStore, flashcards store.FlashcardStore) error,
) error {
	return fn(ctx, r.practices, r.flashcards)
}

// fakeCatalogClient implements CatalogClient with a function field.
type fakeCatalogClient struct {
	GetFlashcardsFn func(ctx context.Context, topicID, authorization string) ([]domain.CatalogFlashcard, error)
	Cards           []domain.CatalogFlashcard
	Err             error
	Calls           int
}

func (c *fakeCatalogClient) GetFlashcards(
	ctx context.Context,
	topicID, authorization string,
) ([]domain.CatalogFlashcard, error) {
	c.Calls++
	if c.GetFlashcardsFn != nil {
		return c.GetFlashcardsFn(ctx, topicID, authorization)
	}
	return c.Cards, c.Err
}

// captureEmitter records emitted events.
type captureEmitter struct {
	mu     sync.Mutex
	events []*events.PracticeEvent
	err    error
}

func (e *captureEmitter) EmitEvent(ctx context.Context, event *events.PracticeEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *captureEmitter) emitted() []*events.PracticeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*events.PracticeEvent(nil), e.events...)
}
