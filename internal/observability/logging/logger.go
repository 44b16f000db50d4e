// Package logging provides structured logging utilities using the standard library's
// log/slog package. It offers helper functions for creating loggers with consistent
// configuration and per-run correlation.
package logging

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// NewLogger creates a new structured logger with JSON output.
// The log level can be controlled via the LOG_LEVEL environment variable.
// Supported levels: debug, info, warn, error
// Default level: info
func NewLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, handlerOptions())
	return slog.New(handler)
}

// NewTextLogger creates a new structured logger with human-readable text output.
// This is useful for local development and dry runs.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, handlerOptions())
	return slog.New(handler)
}

func handlerOptions() *slog.HandlerOptions {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	return &slog.HandlerOptions{
		Level: logLevel,
		// Add source code location for error and warn levels
		AddSource: logLevel <= slog.LevelWarn,
	}
}

// WithRunID returns a new logger carrying a freshly generated run id, along with
// the id itself. Every log line of a single invocation shares the id, which makes
// interleaved logs from overlapping runs attributable.
func WithRunID(logger *slog.Logger) (*slog.Logger, string) {
	runID := uuid.NewString()
	return logger.With(slog.String("run_id", runID)), runID
}
