package pagerank

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/pagerank/power"
)

// Logger wraps slog.Logger with pagerank-specific context.
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

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithIteration adds an iteration field to the logger.
func (l *Logger) WithIteration(i int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iteration", i),
	}
}

// LogIngest logs the outcome of reading an edge list.
// Callers attach the input with WithPath.
func (l *Logger) LogIngest(ctx context.Context, edges, maxNode, usedNodes int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingest failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ingest completed",
			"edges", edges,
			"max_node", maxNode,
			"used_nodes", usedNodes,
			"took", took,
		)
	}
}

// LogIteration logs one completed step.
// Callers attach the step number with WithIteration.
func (l *Logger) LogIteration(ctx context.Context, st power.Stats) {
	l.DebugContext(ctx, "iteration completed",
		"delta", st.Delta,
		"valid_mass", st.ValidMass,
		"leaked_mass", st.LeakedMass,
		"dangling_mass", st.DanglingMass,
		"shards", st.Shards,
		"took", st.Duration,
	)
}

// LogRun logs the outcome of Run.
func (l *Logger) LogRun(ctx context.Context, st RunStats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"iterations", st.Iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"iterations", st.Iterations,
		"converged", st.Converged,
		"delta", st.Delta,
		"valid_mass", st.ValidMass,
		"took", st.Duration,
	)
}

// LogReport logs a report write.
// Callers attach the output with WithPath.
func (l *Logger) LogReport(ctx context.Context, kind string, rows int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report failed",
			"kind", kind,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report written",
			"kind", kind,
			"rows", rows,
			"took", took,
		)
	}
}
