package middleware

import (
	"context"
	"net/http"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/session"
)

type contextKey string

const identityContextKey contextKey = "identity"

// GetIdentity retrieves the authenticated identity from the request context.
// Returns nil if the request is anonymous.
func GetIdentity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityContextKey).(*model.Identity)
	return identity
}

// Auth returns middleware that requires an authenticated session.
// Anonymous requests are redirected to the login page; this is a navigation
// outcome, not an error, and the wrapped handler is never reached.
func Auth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := sessions.Current(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, &identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that resolves the session if present but
// doesn't require it. Sets the identity in the context when authenticated.
func OptionalAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if identity, ok := sessions.Current(r); ok {
				ctx = context.WithValue(ctx, identityContextKey, &identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
