package logging

import (
	"log/slog"
	"os"
)

// InitLogger initializes a global logger with the specified level.
// It configures a JSON handler with source location information.
func InitLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	return slog.New(handler)
}

// InitTextLogger initializes a logger with a plain text handler.
// Interactive tools use it where JSON output would be hard to read.
func InitTextLogger(level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// NewComponentLogger creates a component-specific logger with context.
// It adds the component name to all log messages for better traceability.
func NewComponentLogger(base *slog.Logger, component string) *slog.Logger {
	return base.With(
		slog.String("component", component),
	)
}
