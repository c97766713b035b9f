package notesync

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/notesync/model"
)

// Logger wraps slog.Logger with notesync-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithURL adds the document URL to the logger.
func (l *Logger) WithURL(url string) *Logger {
	return &Logger{
		Logger: l.Logger.With("url", url),
	}
}

// LogLoad logs the initial load.
func (l *Logger) LogLoad(ctx context.Context, notes int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"notes", notes,
			"elapsed", elapsed,
		)
	}
}

// LogSave logs a completed save.
func (l *Logger) LogSave(ctx context.Context, bytes int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "save failed",
			"bytes", bytes,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"bytes", bytes,
			"elapsed", elapsed,
		)
	}
}

// LogMutation logs an applied or rejected mutation.
func (l *Logger) LogMutation(ctx context.Context, op string, id model.NoteID, changed bool, err error) {
	if err != nil {
		l.WarnContext(ctx, "mutation rejected",
			"op", op,
			"id", id.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "mutation applied",
			"op", op,
			"id", id.String(),
			"changed", changed,
		)
	}
}
