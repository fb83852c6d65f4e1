package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tomehq/practice-api/internal/api"
	apiMiddleware "github.com/tomehq/practice-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	practiceHandler := api.NewPracticeHandler(app.practiceService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtVerifier)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		practiceHandler.RegisterRoutes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
