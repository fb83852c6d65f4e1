package api

import (
	"errors"
	"net/http"

	"github.com/tomehq/practice-api/internal/service/auth"
	"github.com/tomehq/practice-api/internal/service/practice"
	"github.com/tomehq/practice-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingUserClaim):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, practice.ErrPracticeNotFound),
		errors.Is(err, practice.ErrFlashcardNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, practice.ErrOngoingPractice),
		errors.Is(err, practice.ErrFlashcardAlreadyAnswered),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, practice.ErrInvalidPracticeType),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Upstream dependency failures
	case errors.Is(err, practice.ErrCatalogUnavailable):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// The ongoing-practice conflict message names the existing practice,
	// which clients surface to the user as-is.
	var conflict *practice.OngoingPracticeError
	if errors.As(err, &conflict) {
		return conflict.Error()
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingUserClaim):
		return "Invalid token"

	case errors.Is(err, practice.ErrPracticeNotFound):
		return "Practice not found"

	case errors.Is(err, practice.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, practice.ErrFlashcardAlreadyAnswered):
		return "Flashcard already answered"

	case errors.Is(err, practice.ErrInvalidPracticeType):
		return "Invalid practice type"

	case errors.Is(err, practice.ErrCatalogUnavailable):
		return "Flashcard catalog unavailable"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
