package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request or command logger, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithCollection scopes the context logger to a record collection so every
// line logged below it carries the collection name.
func WithCollection(ctx context.Context, collection string) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(zap.String("collection", collection)))
}
