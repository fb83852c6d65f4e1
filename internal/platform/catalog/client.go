// Package catalog provides the HTTP client for the upstream flashcard
// catalog service. The client is a pure request/response collaborator:
// it fetches the canonical flashcard set for a topic, forwarding the
// caller's bearer credential and correlation id, and keeps no state.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tomehq/practice-api/internal/api/shared"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/platform/logger"
)

// getFlashcardsResponse is the wire shape of the catalog's flashcard listing.
type getFlashcardsResponse struct {
	Flashcards []domain.CatalogFlashcard `json:"flashcards"`
}

// Client calls the flashcard catalog over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client for the given endpoint.
// If logger is nil, a default logger will be used.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With(slog.String("component", "catalog_client")),
	}
}

// GetFlashcards fetches the canonical flashcard set for a topic. The
// caller's Authorization header is forwarded unchanged, and the request
// carries the correlation id found in the context.
// Failures are not retried here; retrying is the caller's concern.
func (c *Client) GetFlashcards(
	ctx context.Context,
	topicID string,
	authorization string,
) ([]domain.CatalogFlashcard, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	requestURL := fmt.Sprintf("%s/flashcards?topicId=%s", c.endpoint, url.QueryEscape(topicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	if cid := shared.GetTraceID(ctx); cid != "" {
		req.Header.Set("x-correlation-id", cid)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	log.Debug("fetching flashcards from catalog",
		slog.String("topic_id", topicID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("catalog request failed",
			slog.String("error", err.Error()),
			slog.String("topic_id", topicID))
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("catalog returned non-OK status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("topic_id", topicID),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload getFlashcardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("failed to decode catalog response",
			slog.String("error", err.Error()),
			slog.String("topic_id", topicID))
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	log.Debug("fetched flashcards from catalog",
		slog.String("topic_id", topicID),
		slog.Int("flashcard_count", len(payload.Flashcards)))

	return payload.Flashcards, nil
}
