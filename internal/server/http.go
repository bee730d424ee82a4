package server

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPHandler wraps h with tracing. h must see every path unmodified, so
// no ServeMux is involved: a mux redirects unclean paths.
func NewHTTPHandler(h *Handler) http.Handler {
	return otelhttp.NewHandler(h, "inspect",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
}
