// Package logger provides a structured, levelled logger built on log/slog.
//
// The data layer logs every storage fallback, migration step and hydration
// pass through this package so degraded persistence is visible in one place:
//
//	log := logger.With("component", "storage")
//	log.Warn("engine write failed, using flat store", "key", key)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/freshko/config"
)

var L *slog.Logger

func init() {
	var level slog.Level
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: level}

	switch config.AppEnv() {
	case "production", "prod":
		level = slog.LevelInfo
		opts.Level = level
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		level = slog.LevelDebug
		opts.Level = level
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// SetHandler replaces the base handler, e.g. to fan out to the Mongo sink:
//
//	h, _ := logger.NewMongoHandler(uri, db, "logs")
//	logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), h))
func SetHandler(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// With returns a logger pre-tagged with the given attributes.
func With(args ...any) *slog.Logger { return L.With(args...) }

// ctxKey is the unexported key used to store an operation-scoped *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger into ctx for downstream storage calls.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
