package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomehq/practice-api/internal/platform/logger"
)

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))
	defaultLogger := slog.New(slog.NewTextHandler(&buf, nil))

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "logger in context wins",
			ctx:  logger.WithLogger(context.Background(), stored),
			want: stored,
		},
		{
			name: "empty context falls back to default",
			ctx:  context.Background(),
			want: defaultLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))

	got := logger.FromContext(logger.WithLogger(context.Background(), stored))
	assert.Same(t, stored, got)

	// With no logger in the context the process default is returned.
	assert.NotNil(t, logger.FromContext(context.Background()))
}
