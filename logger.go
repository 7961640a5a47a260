package kdindex

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers so build and search
// events use consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler writes
// text logs at Info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger writing JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// LogBuild records the outcome of a build.
func (l *Logger) LogBuild(ctx context.Context, points, nodes, leafSize int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "kd-tree build failed",
			"points", points,
			"leaf_size", leafSize,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "kd-tree built",
		"points", points,
		"nodes", nodes,
		"leaf_size", leafSize,
		"took", took,
	)
}

// LogSearch records a single query. It is a no-op unless Debug is enabled.
func (l *Logger) LogSearch(ctx context.Context, kind SearchKind, found int, took time.Duration) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "search completed",
		"kind", string(kind),
		"results", found,
		"took", took,
	)
}
