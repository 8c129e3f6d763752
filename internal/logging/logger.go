package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"sortable/internal/ports"
)

// Logger wraps slog.Logger with consistent field names for reorder operations.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON logs to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// New builds a logger from configuration values: format is "text" or
// "json", level one of debug, info, warn, error.
func New(w io.Writer, format, level string) *Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return NewJSONLogger(w, lvl)
	}
	return NewTextLogger(w, lvl)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithScope adds a scope field to the logger.
func (l *Logger) WithScope(scope string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scope", scope),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// WithRequest adds the HTTP method, path and request ID to the logger.
func (l *Logger) WithRequest(method, path, requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", method, "path", path, "request_id", requestID),
	}
}

// LogMove logs a single move.
func (l *Logger) LogMove(ctx context.Context, scope string, start, end, changed int, err error) {
	if err != nil {
		l.WarnContext(ctx, "move failed",
			"scope", scope,
			"startorder", start,
			"endorder", end,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "move completed",
		"scope", scope,
		"startorder", start,
		"endorder", end,
		"changed", changed,
	)
}

// LogBulkMove logs a bulk move.
func (l *Logger) LogBulkMove(ctx context.Context, scope, dest string, selected, moved int, err error) {
	if err != nil {
		l.WarnContext(ctx, "bulk move failed",
			"scope", scope,
			"destination", dest,
			"selected", selected,
			"moved", moved,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "bulk move completed",
		"scope", scope,
		"destination", dest,
		"selected", selected,
		"moved", moved,
	)
}

// RankLogger is a rank observer writing every change at debug level.
type RankLogger struct {
	log *Logger
}

// Ensure RankLogger implements RankObserver
var _ ports.RankObserver = (*RankLogger)(nil)

// NewRankLogger creates a RankLogger
func NewRankLogger(log *Logger) *RankLogger {
	return &RankLogger{log: log.WithComponent("ranks")}
}

// BeforeRankChange logs the pending change
func (r *RankLogger) BeforeRankChange(ctx context.Context, ev ports.RankEvent) error {
	r.log.DebugContext(ctx, "rank change pending",
		"scope", ev.Scope,
		"id", ev.ID,
		"from", ev.OldRank,
		"to", ev.NewRank,
		"moved", ev.Moved,
		"seq", ev.Seq,
	)
	return nil
}

// AfterRankChange logs the committed change
func (r *RankLogger) AfterRankChange(ctx context.Context, ev ports.RankEvent) {
	r.log.DebugContext(ctx, "rank changed",
		"scope", ev.Scope,
		"id", ev.ID,
		"from", ev.OldRank,
		"to", ev.NewRank,
		"moved", ev.Moved,
		"seq", ev.Seq,
	)
}
