// Package logger provides the structured, levelled logger built on log/slog.
//
// WithCtx returns a logger pre-tagged with the request ID, so every log line
// from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_number", order.OrderNumber)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_number=ORD-...
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/aushadhi/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for log aggregators.
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// Human-readable for dev.
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// SetHandler replaces the process logger (used to attach the Mongo sink).
func SetHandler(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// ctxKey is the unexported key under which the per-request logger is stored.
type ctxKey struct{}

// WithCtx returns the per-request logger injected by the Logger middleware,
// or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged *slog.Logger into ctx. Called by the
// Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
