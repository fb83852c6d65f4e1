// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/api/shared"
	"github.com/tomehq/practice-api/internal/domain"
	"github.com/tomehq/practice-api/internal/platform/logger"
	"github.com/tomehq/practice-api/internal/service/practice"
)

// StartPracticeRequest represents the request body for starting a practice
type StartPracticeRequest struct {
	TopicID string `json:"topicId"      validate:"required,min=1"`
	Type    string `json:"type"         validate:"required,oneof=options gaps"`
}

// SubmitAnswerRequest represents the request body for answering a flashcard.
// SelectedAnswerIndex is informational: correctness is judged by the
// caller, the engine trusts IsCorrect.
type SubmitAnswerRequest struct {
	IsCorrect           *bool `json:"isCorrect"           validate:"required"`
	SelectedAnswerIndex *int  `json:"selectedAnswerIndex"`
}

// PracticesResponse wraps a list of practices.
type PracticesResponse struct {
	Practices []*domain.Practice `json:"practices"`
}

// FlashcardsResponse wraps a list of practice flashcards.
type FlashcardsResponse struct {
	Flashcards []*domain.PracticeFlashcard `json:"flashcards"`
}

// PracticeHandler handles practice-related HTTP requests
type PracticeHandler struct {
	practiceService practice.Service
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(practiceService practice.Service, log *slog.Logger) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for PracticeHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PracticeHandler{
		practiceService: practiceService,
		validator:       validator.New(),
		logger:          log.With(slog.String("component", "practice_handler")),
	}
}

// RegisterRoutes mounts the practice routes on the given router.
func (h *PracticeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/practices", func(r chi.Router) {
		r.Post("/", h.StartPractice)
		r.Get("/", h.ListPractices)
		r.Get("/ongoing", h.ListOngoing)
		r.Route("/{practiceId}", func(r chi.Router) {
			r.Get("/", h.GetPractice)
			r.Delete("/", h.DeletePractice)
			r.Get("/flashcards", h.ListFlashcards)
			r.Get("/flashcards/{flashcardId}", h.GetFlashcard)
			r.Post("/flashcards/{flashcardId}/answer", h.SubmitAnswer)
		})
	})
	r.Route("/topics/{topicId}/practices", func(r chi.Router) {
		r.Get("/", h.ListByTopic)
		r.Get("/latestFinished", h.LatestFinished)
	})
}

// StartPractice handles POST /practices requests
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := shared.GetUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req StartPracticeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.practiceService.StartPractice(
		r.Context(),
		req.TopicID,
		user,
		domain.PracticeType(req.Type),
		shared.GetAuthorization(r.Context()),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("practice started",
		slog.String("practice_id", result.PracticeID.String()),
		slog.String("topic_id", req.TopicID))

	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// SubmitAnswer handles POST /practices/{practiceId}/flashcards/{flashcardId}/answer requests
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	practiceID, ok := h.pathUUID(w, r, "practiceId")
	if !ok {
		return
	}
	flashcardID, ok := h.pathUUID(w, r, "flashcardId")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	attrs := []any{
		slog.String("practice_id", practiceID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Bool("is_correct", *req.IsCorrect),
	}
	if req.SelectedAnswerIndex != nil {
		attrs = append(attrs, slog.Int("selected_answer_index", *req.SelectedAnswerIndex))
	}
	log.Info("answer submitted", attrs...)

	result, err := h.practiceService.SubmitAnswer(r.Context(), practiceID, flashcardID, *req.IsCorrect)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// DeletePractice handles DELETE /practices/{practiceId} requests
func (h *PracticeHandler) DeletePractice(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := h.pathUUID(w, r, "practiceId")
	if !ok {
		return
	}

	result, err := h.practiceService.DeletePractice(r.Context(), practiceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetPractice handles GET /practices/{practiceId} requests
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := h.pathUUID(w, r, "practiceId")
	if !ok {
		return
	}

	prac, err := h.practiceService.GetPractice(r.Context(), practiceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prac)
}

// ListPractices handles GET /practices requests
func (h *PracticeHandler) ListPractices(w http.ResponseWriter, r *http.Request) {
	startedFrom := r.URL.Query().Get("startedFrom")

	list, err := h.practiceService.ListPractices(r.Context(), startedFrom)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PracticesResponse{Practices: emptyIfNil(list)})
}

// ListOngoing handles GET /practices/ongoing requests
func (h *PracticeHandler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	topicID := r.URL.Query().Get("topicId")

	list, err := h.practiceService.ListOngoing(r.Context(), topicID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PracticesResponse{Practices: emptyIfNil(list)})
}

// ListByTopic handles GET /topics/{topicId}/practices requests
func (h *PracticeHandler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicId")
	finishedOnly := r.URL.Query().Get("finished") == "true"

	list, err := h.practiceService.ListByTopic(r.Context(), topicID, finishedOnly)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PracticesResponse{Practices: emptyIfNil(list)})
}

// LatestFinished handles GET /topics/{topicId}/practices/latestFinished requests.
// A topic with no finished practice yields an empty object, not a 404.
func (h *PracticeHandler) LatestFinished(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicId")

	prac, err := h.practiceService.LatestFinished(r.Context(), topicID)
	if err != nil {
		if errors.Is(err, practice.ErrPracticeNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prac)
}

// ListFlashcards handles GET /practices/{practiceId}/flashcards requests
func (h *PracticeHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := h.pathUUID(w, r, "practiceId")
	if !ok {
		return
	}

	list, err := h.practiceService.ListFlashcards(r.Context(), practiceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if list == nil {
		list = []*domain.PracticeFlashcard{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{Flashcards: list})
}

// GetFlashcard handles GET /practices/{practiceId}/flashcards/{flashcardId} requests
func (h *PracticeHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := h.pathUUID(w, r, "practiceId")
	if !ok {
		return
	}
	flashcardID, ok := h.pathUUID(w, r, "flashcardId")
	if !ok {
		return
	}

	fc, err := h.practiceService.GetFlashcard(r.Context(), practiceID, flashcardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fc)
}

// pathUUID parses a UUID path parameter, answering 400 when it is malformed.
func (h *PracticeHandler) pathUUID(
	w http.ResponseWriter,
	r *http.Request,
	param string,
) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func emptyIfNil(list []*domain.Practice) []*domain.Practice {
	if list == nil {
		return []*domain.Practice{}
	}
	return list
}
