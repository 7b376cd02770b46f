// Package logging provides structured logging helpers shared across the
// module: logger construction, context plumbing, and safe cleanup wrappers
// for deferred Close and Rollback calls.
package logging

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
)

type contextKey struct{}

// NewStructuredLogger returns a JSON-formatted logger writing to w at the
// given minimum level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default() when none
// was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogOperation records a named operation at Info level.
func LogOperation(logger *slog.Logger, operation string, attrs ...slog.Attr) {
	logger.LogAttrs(context.Background(), slog.LevelInfo, operation, attrs...)
}

// LogError records err at Error level along with any extra attributes.
func LogError(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.Any("error", err))
	logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// SafeCloseWithLogging closes c and logs a warning when the close fails.
// Intended for deferred cleanup of rows, files, and response bodies where
// the close error cannot change the outcome.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, resourceName string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("failed to close resource",
			slog.String("resource", resourceName),
			slog.Any("error", err))
	}
}

// SafeRollbackWithLogging rolls tx back and logs a warning when the rollback
// fails for a reason other than the transaction already being finished.
func SafeRollbackWithLogging(tx *sql.Tx, logger *slog.Logger, operationName string) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Warn("failed to roll back transaction",
			slog.String("operation", operationName),
			slog.Any("error", err))
	}
}
