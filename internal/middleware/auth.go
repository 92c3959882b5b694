package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionVerifier turns a session token into the id of the user it was
// issued to.
type SessionVerifier interface {
	VerifySession(token string) (uuid.UUID, error)
}

type userIDKey struct{}

// RequireSession rejects requests without a valid session with 401.
// The token is read from the session cookie, or from an
// "Authorization: Bearer" header when there is no cookie.
func RequireSession(v SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			id, err := v.VerifySession(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the authenticated user id stored by RequireSession.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
