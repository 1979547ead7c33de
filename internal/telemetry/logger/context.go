// Package logger provides structured logging for resp-cli.
package logger

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const (
	loggerKey    contextKey = "respcli.logger"
	sessionIDKey contextKey = "respcli.session_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// NewSessionID returns a lowercase ULID identifying one CLI session.
func NewSessionID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return strings.ToLower(id.String())
}

// WithSessionID adds a session ID to the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also tags the logger with the
// session ID carried by ctx.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if id := SessionIDFromContext(ctx); id != "" {
		l = l.With("session_id", id)
	}
	return l
}
