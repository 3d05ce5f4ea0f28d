package logger

import "context"

type requestIDKey struct{}

// WithRequestID stores the request ID on the context so downstream log
// lines can correlate with the HTTP access log.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID from ctx, or "" when unset.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
