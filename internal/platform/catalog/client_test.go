package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomehq/practice-api/internal/api/shared"
	"github.com/tomehq/practice-api/internal/platform/catalog"
)

func TestGetFlashcards(t *testing.T) {
	t.Parallel()

	var gotAuth, gotCorrelation, gotTopic string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("x-correlation-id")
		gotTopic = r.URL.Query().Get("topicId")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"flashcards": [
				{
					"type": "options",
					"user": "user@example.com",
					"topicId": "topic-1",
					"topicCode": "T1",
					"question": "Who painted it?",
					"options": ["Monet", "Manet"],
					"rightAnswerIndex": 1
				},
				{
					"type": "options",
					"user": "user@example.com",
					"topicId": "topic-1",
					"topicCode": "T1",
					"question": "When?",
					"options": ["1870", "1880"],
					"rightAnswerIndex": 0,
					"id": "original-2"
				}
			]
		}`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL, nil)

	ctx := shared.SetTraceID(context.Background(), "cid-123")
	flashcards, err := client.GetFlashcards(ctx, "topic-1", "Bearer token-abc")

	require.NoError(t, err)
	require.Len(t, flashcards, 2)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "cid-123", gotCorrelation)
	assert.Equal(t, "topic-1", gotTopic)

	assert.Equal(t, "Who painted it?", flashcards[0].Question)
	assert.Equal(t, 1, flashcards[0].RightAnswerIndex)
	assert.Equal(t, "original-2", flashcards[1].ID)
}

func TestGetFlashcardsUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL, nil)

	_, err := client.GetFlashcards(context.Background(), "topic-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGetFlashcardsBadPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"flashcards": [`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL, nil)

	_, err := client.GetFlashcards(context.Background(), "topic-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
