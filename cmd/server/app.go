package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tomehq/practice-api/internal/config"
	"github.com/tomehq/practice-api/internal/events"
	"github.com/tomehq/practice-api/internal/platform/catalog"
	"github.com/tomehq/practice-api/internal/platform/postgres"
	"github.com/tomehq/practice-api/internal/service/auth"
	"github.com/tomehq/practice-api/internal/service/practice"
)

// application holds the wired dependencies of the running server.
type application struct {
	config          *config.Config
	logger          *slog.Logger
	db              *sql.DB
	jwtVerifier     auth.JWTVerifier
	practiceService practice.Service
}

// buildApplication connects the database, runs migrations, and wires the
// stores, catalog client, event emitter, and lifecycle engine together.
func buildApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db, logger); err != nil {
		closeQuietly(db, logger)
		return nil, err
	}

	jwtVerifier, err := auth.NewJWTVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to create JWT verifier: %w", err)
	}

	practiceStore := postgres.NewPostgresPracticeStore(db, logger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)
	catalogClient := catalog.NewClient(cfg.Catalog.Endpoint, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))

	txRunner := practice.NewSQLTxRunner(db, practiceStore, flashcardStore)
	practiceService, err := practice.NewService(
		practiceStore,
		flashcardStore,
		catalogClient,
		txRunner,
		emitter,
		logger,
	)
	if err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to create practice service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtVerifier:     jwtVerifier,
		practiceService: practiceService,
	}, nil
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
