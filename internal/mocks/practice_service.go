// Package mocks provides hand-written test doubles shared across
// packages. Each mock exposes function fields to override behavior per
// test and tracks calls for verification.
package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/service/practice"
)

// MockPracticeService implements practice.Service for testing
type MockPracticeService struct {
	// Custom behavior functions
	StartPracticeFn  func(ctx context.Context, topicID, user string, practiceType domain.PracticeType, authorization string) (*practice.StartResult, error)
	SubmitAnswerFn   func(ctx context.Context, practiceID, flashcardID uuid.UUID, isCorrect bool) (*practice.AnswerResult, error)
	DeletePracticeFn func(ctx context.Context, practiceID uuid.UUID) (*practice.DeleteResult, error)
	GetPracticeFn    func(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error)
	ListPracticesFn  func(ctx context.Context, startedFrom string) ([]*domain.Practice, error)
	ListOngoingFn    func(ctx context.Context, topicID string) ([]*domain.Practice, error)
	ListByTopicFn    func(ctx context.Context, topicID string, finishedOnly bool) ([]*domain.Practice, error)
	LatestFinishedFn func(ctx context.Context, topicID string) (*domain.Practice, error)
	ListFlashcardsFn func(ctx context.Context, practiceID uuid.UUID) ([]*domain.PracticeFlashcard, error)
	GetFlashcardFn   func(ctx context.Context, practiceID, flashcardID uuid.UUID) (*domain.PracticeFlashcard, error)

	// Default response values used when no custom function is provided
	StartResult  *practice.StartResult
	AnswerResult *practice.AnswerResult
	DeleteResult *practice.DeleteResult
	Practice     *domain.Practice
	Practices    []*domain.Practice
	Flashcard    *domain.PracticeFlashcard
	Flashcards   []*domain.PracticeFlashcard
	Err          error

	// Call tracking for verification
	StartPracticeCalls struct {
		mu      sync.Mutex
		Count   int
		TopicID []string
		Types   []domain.PracticeType
	}

	SubmitAnswerCalls struct {
		mu           sync.Mutex
		Count        int
		PracticeIDs  []uuid.UUID
		FlashcardIDs []uuid.UUID
		IsCorrect    []bool
	}
}

// StartPractice implements the practice.Service interface
func (m *MockPracticeService) StartPractice(
	ctx context.Context,
	topicID, user string,
	practiceType domain.PracticeType,
	authorization string,
) (*practice.StartResult, error) {
	m.StartPracticeCalls.mu.Lock()
	m.StartPracticeCalls.Count++
	m.StartPracticeCalls.TopicID = append(m.StartPracticeCalls.TopicID, topicID)
	m.StartPracticeCalls.Types = append(m.StartPracticeCalls.Types, practiceType)
	m.StartPracticeCalls.mu.Unlock()

	if m.StartPracticeFn != nil {
		return m.StartPracticeFn(ctx, topicID, user, practiceType, authorization)
	}
	return m.StartResult, m.Err
}

// SubmitAnswer implements the practice.Service interface
func (m *MockPracticeService) SubmitAnswer(
	ctx context.Context,
	practiceID, flashcardID uuid.UUID,
	isCorrect bool,
) (*practice.AnswerResult, error) {
	m.SubmitAnswerCalls.mu.Lock()
	m.SubmitAnswerCalls.Count++
	m.SubmitAnswerCalls.PracticeIDs = append(m.SubmitAnswerCalls.PracticeIDs, practiceID)
	m.SubmitAnswerCalls.FlashcardIDs = append(m.SubmitAnswerCalls.FlashcardIDs, flashcardID)
	m.SubmitAnswerCalls.IsCorrect = append(m.SubmitAnswerCalls.IsCorrect, isCorrect)
	m.SubmitAnswerCalls.mu.Unlock()

	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, practiceID, flashcardID, isCorrect)
	}
	return m.AnswerResult, m.Err
}

// DeletePractice implements the practice.Service interface
func (m *MockPracticeService) DeletePractice(
	ctx context.Context,
	practiceID uuid.UUID,
) (*practice.DeleteResult, error) {
	if m.DeletePracticeFn != nil {
		return m.DeletePracticeFn(ctx, practiceID)
	}
	return m.DeleteResult, m.Err
}

// GetPractice implements the practice.Service interface
func (m *MockPracticeService) GetPractice(
	ctx context.Context,
	practiceID uuid.UUID,
) (*domain.Practice, error) {
	if m.GetPracticeFn != nil {
		return m.GetPracticeFn(ctx, practiceID)
	}
	return m.Practice, m.Err
}

// ListPractices implements the practice.Service interface
func (m *MockPracticeService) ListPractices(
	ctx context.Context,
	startedFrom string,
) ([]*domain.Practice, error) {
	if m.ListPracticesFn != nil {
		return m.ListPracticesFn(ctx, startedFrom)
	}
	return m.Practices, m.Err
}

// ListOngoing implements the practice.Service interface
func (m *MockPracticeService) ListOngoing(
	ctx context.Context,
	topicID string,
) ([]*domain.Practice, error) {
	if m.ListOngoingFn != nil {
		return m.ListOngoingFn(ctx, topicID)
	}
	return m.Practices, m.Err
}

// ListByTopic implements the practice.Service interface
func (m *MockPracticeService) ListByTopic(
	ctx context.Context,
	topicID string,
	finishedOnly bool,
) ([]*domain.Practice, error) {
	if m.ListByTopicFn != nil {
		return m.ListByTopicFn(ctx, topicID, finishedOnly)
	}
	return m.Practices, m.Err
}

// LatestFinished implements the practice.Service interface
func (m *MockPracticeService) LatestFinished(
	ctx context.Context,
	topicID string,
) (*domain.Practice, error) {
	if m.LatestFinishedFn != nil {
		return m.LatestFinishedFn(ctx, topicID)
	}
	return m.Practice, m.Err
}

// ListFlashcards implements the practice.Service interface
func (m *MockPracticeService) ListFlashcards(
	ctx context.Context,
	practiceID uuid.UUID,
) ([]*domain.PracticeFlashcard, error) {
	if m.ListFlashcardsFn != nil {
		return m.ListFlashcardsFn(ctx, practiceID)
	}
	return m.Flashcards, m.Err
}

// GetFlashcard implements the practice.Service interface
func (m *MockPracticeService) GetFlashcard(
	ctx context.Context,
	practiceID, flashcardID uuid.UUID,
) (*domain.PracticeFlashcard, error) {
	if m.GetFlashcardFn != nil {
		return m.GetFlashcardFn(ctx, practiceID, flashcardID)
	}
	return m.Flashcard, m.Err
}
