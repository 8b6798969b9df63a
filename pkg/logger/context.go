package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithFields returns a context carrying a logger extended with the given
// key/value pairs. Subsequent FromContext calls see the fields.
func WithFields(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, FromContext(ctx).With(fields...))
}

// FromContext returns the logger carried by ctx, falling back to the
// process-wide logger when none is attached.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
