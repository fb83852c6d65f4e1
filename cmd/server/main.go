// Package main implements the entry point for the practice API server,
// which runs timed, scored quiz sessions (practices) over flashcards
// fetched from the upstream catalog.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/tomehq/practice-api/internal/config"
	"github.com/tomehq/practice-api/internal/platform/logger"
)

// main initializes configuration, logging, the database, and all
// services, then runs the HTTP server until a shutdown signal arrives.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return buildApplication(cfg, appLogger)
}
