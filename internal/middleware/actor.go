// Package middleware provides HTTP middleware shared across handlers.
package middleware

import (
	"context"
	"net/http"
)

const headerActorID = "X-User-ID"

type actorCtxKey struct{}

// ActorID is middleware that extracts the acting user's ID from the
// X-User-ID header (set by the UI's auth proxy) and stores it in the
// request context. Requests without the header proceed with an empty
// actor; handlers that need one reject those themselves.
func ActorID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), actorCtxKey{}, r.Header.Get(headerActorID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorIDFromContext returns the acting user ID stored in ctx, or "" if absent.
func ActorIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithActorID returns a context carrying the given actor ID. Used by
// internal callers (e.g. the sweep trigger) that bypass HTTP.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, id)
}
