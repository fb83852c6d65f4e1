package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomehq/practice-api/internal/api/shared"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/mocks"
	"github.com/tomehq/practice-api/internal/service/practice"
)

// newTestRouter mounts the practice routes with the user and raw
// bearer credential already in context, as the auth middleware would
// leave them.
func newTestRouter(svc *mocks.MockPracticeService) http.Handler {
	handler := NewPracticeHandler(svc, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserContextKey, "user@example.com")
			ctx = context.WithValue(ctx, shared.AuthorizationContextKey, "Bearer token")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	handler.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStartPracticeHandler(t *testing.T) {
	t.Parallel()

	practiceID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockPracticeService)
		expectedStatus int
		expectedErr    string
	}{
		{
			name: "success",
			body: StartPracticeRequest{TopicID: "topic-1", Type: "options"},
			setupMock: func(m *mocks.MockPracticeService) {
				m.StartResult = &practice.StartResult{
					PracticeID:         practiceID,
					FlashcardsInserted: 4,
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing topic",
			body:           StartPracticeRequest{Type: "options"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown practice type",
			body:           StartPracticeRequest{TopicID: "topic-1", Type: "kanji"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           "not-json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "ongoing practice conflict",
			body: StartPracticeRequest{TopicID: "topic-1", Type: "options"},
			setupMock: func(m *mocks.MockPracticeService) {
				m.Err = &practice.OngoingPracticeError{
					TopicID:    "topic-1",
					PracticeID: practiceID,
				}
			},
			expectedStatus: http.StatusConflict,
			expectedErr:    "ongoing practice found: [ 11111111-1111-1111-1111-111111111111 ] on topic topic-1. Close that one first.",
		},
		{
			name: "catalog down",
			body: StartPracticeRequest{TopicID: "topic-1", Type: "options"},
			setupMock: func(m *mocks.MockPracticeService) {
				m.Err = practice.ErrCatalogUnavailable
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.MockPracticeService{}
			if tc.setupMock != nil {
				tc.setupMock(svc)
			}
			router := newTestRouter(svc)

			rec := doJSON(t, router, http.MethodPost, "/practices", tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus == http.StatusCreated {
				var result practice.StartResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, practiceID, result.PracticeID)
				assert.Equal(t, int64(4), result.FlashcardsInserted)

				require.Equal(t, 1, svc.StartPracticeCalls.Count)
				assert.Equal(t, "topic-1", svc.StartPracticeCalls.TopicID[0])
				assert.Equal(t, domain.PracticeTypeOptions, svc.StartPracticeCalls.Types[0])
			}

			if tc.expectedErr != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tc.expectedErr, errResp.Error)
			}
		})
	}
}

func TestSubmitAnswerHandler(t *testing.T) {
	t.Parallel()

	practiceID := uuid.New()
	flashcardID := uuid.New()
	answerPath := "/practices/" + practiceID.String() + "/flashcards/" + flashcardID.String() + "/answer"

	boolPtr := func(b bool) *bool { return &b }
	intPtr := func(i int) *int { return &i }

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		score := 50
		svc := &mocks.MockPracticeService{
			AnswerResult: &practice.AnswerResult{
				IsCorrect: true,
				Finished:  true,
				Score:     &score,
				Stats:     &domain.PracticeStats{AverageAttempts: 0.5, TotalWrongAnswers: 1, NumCards: 2},
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, answerPath, SubmitAnswerRequest{
			IsCorrect:           boolPtr(true),
			SelectedAnswerIndex: intPtr(2),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var result practice.AnswerResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Finished)
		require.NotNil(t, result.Score)
		assert.Equal(t, 50, *result.Score)

		require.Equal(t, 1, svc.SubmitAnswerCalls.Count)
		assert.Equal(t, practiceID, svc.SubmitAnswerCalls.PracticeIDs[0])
		assert.Equal(t, flashcardID, svc.SubmitAnswerCalls.FlashcardIDs[0])
		assert.True(t, svc.SubmitAnswerCalls.IsCorrect[0])
	})

	t.Run("missing isCorrect", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, answerPath, map[string]int{"selectedAnswerIndex": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, svc.SubmitAnswerCalls.Count)
	})

	t.Run("malformed flashcard id", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost,
			"/practices/"+practiceID.String()+"/flashcards/not-a-uuid/answer",
			SubmitAnswerRequest{IsCorrect: boolPtr(true)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("already answered", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{Err: practice.ErrFlashcardAlreadyAnswered}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, answerPath,
			SubmitAnswerRequest{IsCorrect: boolPtr(true)})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("flashcard not found", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{Err: practice.ErrFlashcardNotFound}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, answerPath,
			SubmitAnswerRequest{IsCorrect: boolPtr(false)})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetPracticeHandler(t *testing.T) {
	t.Parallel()

	practiceID := uuid.New()
	score := 75

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{
			Practice: &domain.Practice{
				ID:         practiceID,
				TopicID:    "topic-1",
				User:       "user@example.com",
				Type:       domain.PracticeTypeOptions,
				StartedOn:  "20240301",
				FinishedOn: "20240302",
				Score:      &score,
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/practices/"+practiceID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Practice
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, practiceID, got.ID)
		assert.Equal(t, "20240302", got.FinishedOn)
		require.NotNil(t, got.Score)
		assert.Equal(t, 75, *got.Score)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{Err: practice.ErrPracticeNotFound}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/practices/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/practices/nope", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListOngoingHandler(t *testing.T) {
	t.Parallel()

	t.Run("empty list renders as array", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{
			ListOngoingFn: func(ctx context.Context, topicID string) ([]*domain.Practice, error) {
				return nil, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/practices/ongoing?topicId=topic-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"practices": []}`, rec.Body.String())
	})

	t.Run("open practice on topic", func(t *testing.T) {
		t.Parallel()

		open := &domain.Practice{
			ID:        uuid.New(),
			TopicID:   "topic-1",
			User:      "user@example.com",
			Type:      domain.PracticeTypeGaps,
			StartedOn: "20240301",
		}
		svc := &mocks.MockPracticeService{Practices: []*domain.Practice{open}}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/practices/ongoing?topicId=topic-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PracticesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Practices, 1)
		assert.Equal(t, open.ID, resp.Practices[0].ID)
	})
}

func TestLatestFinishedHandler(t *testing.T) {
	t.Parallel()

	t.Run("no finished practice yields empty object", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockPracticeService{Err: practice.ErrPracticeNotFound}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/topics/topic-1/practices/latestFinished", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("latest finished practice", func(t *testing.T) {
		t.Parallel()

		score := 100
		svc := &mocks.MockPracticeService{
			Practice: &domain.Practice{
				ID:         uuid.New(),
				TopicID:    "topic-1",
				User:       "user@example.com",
				Type:       domain.PracticeTypeOptions,
				StartedOn:  "20240301",
				FinishedOn: "20240301",
				Score:      &score,
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/topics/topic-1/practices/latestFinished", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Practice
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "20240301", got.FinishedOn)
	})
}

func TestDeletePracticeHandler(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		DeleteResult: &practice.DeleteResult{
			DeletedPracticeCount:  1,
			DeletedFlashcardCount: 3,
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/practices/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result practice.DeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.DeletedPracticeCount)
	assert.Equal(t, int64(3), result.DeletedFlashcardCount)
}

func TestListFlashcardsHandler(t *testing.T) {
	t.Parallel()

	practiceID := uuid.New()
	fc, err := domain.NewPracticeFlashcard(practiceID, domain.CatalogFlashcard{
		Type:     "options",
		TopicID:  "topic-1",
		Question: "Q?",
		Options:  []string{"a", "b"},
	})
	require.NoError(t, err)

	svc := &mocks.MockPracticeService{Flashcards: []*domain.PracticeFlashcard{fc}}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/practices/"+practiceID.String()+"/flashcards", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FlashcardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Flashcards, 1)
	assert.Equal(t, fc.ID, resp.Flashcards[0].ID)

	content, err := resp.Flashcards[0].CatalogContent()
	require.NoError(t, err)
	assert.Equal(t, "Q?", content.Question)
}
