package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, enriched with the request,
// user and trace identifiers found there. Without a stored logger it
// returns a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		return zap.NewNop()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(zap.String("trace_id", sc.TraceID().String()), zap.String("span_id", sc.SpanID().String()))
	}
	return l
}

// WithRequestID stores the request ID in ctx and returns a logger tagged
// with it.
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	l = l.With(zap.String("request_id", requestID))
	return WithContext(ctx, l), l
}

// WithUserID stores the authenticated staff user in ctx.
func WithUserID(ctx context.Context, l *zap.Logger, userID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, userIDKey, userID)
	l = l.With(zap.String("user_id", userID))
	return WithContext(ctx, l), l
}

// RequestID returns the request ID stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// UserID returns the staff user ID stored in ctx.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
