package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/mnagpal/bridgewalk/internal/admin"
	"github.com/mnagpal/bridgewalk/internal/auth"
	"github.com/mnagpal/bridgewalk/internal/store"
)

const sessionCookieName = "bridgewalk_session"

// RequireSession validates the session cookie (or Authorization bearer
// token, for the mobile client) and populates AuthContext.
func RequireSession(sessionStore *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				unauthorized(w, "authentication required")
				return
			}

			sess, err := sessionStore.GetByToken(token)
			if err != nil || sess == nil {
				unauthorized(w, "invalid or expired session")
				return
			}

			ac := auth.AuthContext{
				AccountID: sess.AccountID,
				SessionID: sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireGate rejects requests while the admin gate is not authenticated.
func RequireGate(gate *admin.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Authenticated() {
				unauthorized(w, admin.ErrUnauthorized.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionToken extracts the session token from the request, preferring
// the cookie and falling back to a bearer Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

// SessionCookieName is exported for the auth handler that sets the
// cookie.
func SessionCookieName() string { return sessionCookieName }

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
