package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"dragonfield.org/catalog-web/internal/observability"
	appsession "dragonfield.org/catalog-web/internal/session"
)

type sessionContextKey string

const requestSessionKey sessionContextKey = "catalog.session"

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) *appsession.Session
	Save(http.ResponseWriter, *appsession.Session) error
	Destroy(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and persists
// changes back to the client cookie.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)

			ctx := context.WithValue(r.Context(), requestSessionKey, sess)
			rr := r.WithContext(ctx)

			// The cookie must be written before the handler starts the body.
			if err := store.Save(w, sess); err != nil {
				observability.FromContext(ctx).Warn("session save failed", zap.Error(err))
			}

			next.ServeHTTP(w, rr)
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(requestSessionKey).(*appsession.Session)
	return sess, ok && sess != nil
}

// SessionID returns the current session identifier or empty string.
func SessionID(ctx context.Context) string {
	if sess, ok := SessionFromContext(ctx); ok {
		return sess.ID()
	}
	return ""
}
