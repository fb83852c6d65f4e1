package events

import (
	"context"
	"log/slog"
)

// LoggingHandler is an EventHandler that writes each event to the
// structured log. It is the default notification sink when no external
// transport is configured, and doubles as an audit trail alongside one.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler writing to the given logger.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingHandler{
		logger: logger.With(slog.String("component", "event_logging_handler")),
	}
}

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *PracticeEvent) error {
	h.logger.Info("practice event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_name", event.Name),
		slog.String("practice_id", event.PracticeID.String()),
		slog.String("message", event.Message))
	return nil
}
