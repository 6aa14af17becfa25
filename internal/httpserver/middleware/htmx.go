package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const htmxContextKey contextKey = "htmx.request"

// HTMX returns middleware that flags requests initiated by htmx, identified
// by the HX-Request header the library sets on every fragment call.
func HTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isHTMX := strings.EqualFold(r.Header.Get("HX-Request"), "true")
			ctx := context.WithValue(r.Context(), htmxContextKey, isHTMX)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsHTMXRequest returns true when the current request was initiated by htmx.
func IsHTMXRequest(ctx context.Context) bool {
	isHTMX, ok := ctx.Value(htmxContextKey).(bool)
	return ok && isHTMX
}

// RequireHTMX ensures the request originated from htmx; otherwise returns 404 to
// avoid exposing fragment routes to direct navigation.
func RequireHTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsHTMXRequest(r.Context()) {
				http.NotFound(w, r)
				return
			}
			w.Header().Add("Vary", "HX-Request")
			next.ServeHTTP(w, r)
		})
	}
}
