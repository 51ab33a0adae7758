// Package logging configures the structured slog logger shared by the API
// server and the ingestion worker. Both binaries call NewLogger once at
// startup and install the result as the process default.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"betpress/internal/handler/http/requestid"
)

// NewLogger builds the process logger from the environment. LOG_LEVEL
// selects debug, info, warn or error (anything else means info) and
// LOG_FORMAT=text switches the JSON handler for the human-readable one
// during local runs. Debug level also attaches source locations.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns logger annotated with the request ID carried in
// ctx, so every line emitted for one request shares a correlation ID.
// Without an ID in ctx the logger is returned unchanged.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	id := requestid.FromContext(ctx)
	if id == "" {
		return logger
	}
	return logger.With(slog.String("request_id", id))
}
