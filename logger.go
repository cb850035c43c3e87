package parkmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count (point count) field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithWorkers adds a workers field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogIteration logs a completed iteration.
func (l *Logger) LogIteration(ctx context.Context, s IterationStats) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", s.Iteration,
		"total_cost", s.TotalCost,
		"max_delta", s.MaxDelta,
		"empty_clusters", s.EmptyClusters,
		"assign", s.AssignDuration,
		"update", s.UpdateDuration,
		"cost", s.CostDuration,
	)
}

// LogEmptyClusters logs clusters that received no points in an iteration.
func (l *Logger) LogEmptyClusters(ctx context.Context, iteration int, clusters []int) {
	if len(clusters) == 0 {
		return
	}
	l.WarnContext(ctx, "empty clusters collapsed to origin",
		"iteration", iteration,
		"clusters", clusters,
	)
}

// LogRun logs the end of a clustering run.
func (l *Logger) LogRun(ctx context.Context, iterations int, termination Termination, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"iterations", iterations,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"iterations", iterations,
			"termination", termination.String(),
			"duration", duration,
		)
	}
}
