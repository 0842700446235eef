package logger

import (
	"log/slog"
	"time"
)

// LogOperation logs an economy operation execution
func LogOperation(name string, userID string, duration time.Duration, err error, extra ...any) {
	attrs := []any{
		slog.String("type", "economy"),
		slog.String("operation", name),
		slog.String("user_id", userID),
		slog.Duration("took", duration),
	}
	attrs = append(attrs, extra...)

	if err != nil {
		slog.Error("Operation failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Operation executed", attrs...)
	}
}

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error, extra ...any) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("query", query),
		slog.Duration("took", duration),
	}
	attrs = append(attrs, extra...)

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Query executed", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
