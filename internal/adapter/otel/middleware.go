package otel

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPMiddleware instruments HTTP requests. Health probes and the
// websocket upgrade are excluded: probes fire every few seconds and
// ws connections are long-lived, so both would drown the API spans.
func HTTPMiddleware(serviceName string) func(http.Handler) http.Handler {
	skip := func(r *http.Request) bool {
		return r.URL.Path != "/health" && r.URL.Path != "/ws"
	}
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName, otelhttp.WithFilter(skip))
	}
}
