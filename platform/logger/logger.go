// Package logger provides structured logging built on slog.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with domain-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger for the given environment.
// Production logs JSON, everything else logs human-readable text.
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if !strings.EqualFold(env, "production") {
		opts.Level = slog.LevelDebug
	}

	if strings.EqualFold(env, "production") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{slog.New(handler)}
}

// With returns a logger with the given attributes attached to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, duration time.Duration, clientIP string) {
	l.Info("http request",
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"client_ip", clientIP,
	)
}

// HTTPError logs a request that ended in a server-side error.
func (l *Logger) HTTPError(method, path string, status int, err error) {
	l.Error("http error",
		"method", method,
		"path", path,
		"status", status,
		"error", err,
	)
}

// RateLimitExceeded logs a rejected request on any tier.
func (l *Logger) RateLimitExceeded(tier, clientIP, path string) {
	l.Warn("rate limit exceeded",
		"tier", tier,
		"client_ip", clientIP,
		"path", path,
	)
}

// AuthEvent logs authentication activity (login, refresh, logout).
func (l *Logger) AuthEvent(event, email, clientIP string, success bool) {
	l.Info("auth event",
		"event", event,
		"email", email,
		"client_ip", clientIP,
		"success", success,
	)
}

// BotDetected logs a honeypot hit. The submission is discarded silently,
// this line is the only trace it leaves.
func (l *Logger) BotDetected(clientIP, path string) {
	l.Warn("bot detected",
		"client_ip", clientIP,
		"path", path,
	)
}

// EmailError logs a failed email delivery.
func (l *Logger) EmailError(kind, recipient string, err error) {
	l.Error("email delivery failed",
		"kind", kind,
		"recipient", recipient,
		"error", err,
	)
}

// DatabaseError logs a failed database operation.
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database error",
		"operation", operation,
		"error", err,
	)
}
