package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext returns the request logger, or slog.Default() outside a
// request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithRequestLogger stores logger, tagged with request_id, in ctx.
func WithRequestLogger(ctx context.Context, logger *slog.Logger, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger.With(slog.String("request_id", requestID)))
}
