package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
)

type contextKey string

const sessionKey contextKey = "auth_session"

// SessionFromContext extracts the resolved session from request context, or
// nil for anonymous requests.
func SessionFromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey).(*domain.Session)
	return s
}

// UserIDFromContext extracts the authenticated user id, or uuid.Nil when the
// request is anonymous.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if s := SessionFromContext(ctx); s != nil {
		return s.UserID
	}
	return uuid.Nil
}

// LoadSession resolves the session cookie into request context when present.
// It never rejects: anonymous requests pass through without a session so
// public pages and login can share the middleware chain.
func LoadSession(mgr *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			token, err := uuid.Parse(cookie.Value)
			if err != nil {
				clearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			s, err := mgr.Resolve(r.Context(), token)
			if err != nil {
				// Resolution failure is an infrastructure problem, not an
				// auth decision. Continue anonymous.
				next.ServeHTTP(w, r)
				return
			}
			if s == nil {
				clearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests with a JSON 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Anda harus login terlebih dahulu"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUserRedirect sends anonymous requests to the login page. Used on the
// page routes that browsers hit directly.
func RequireUserRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie writes the session cookie for a freshly created session.
func SetCookie(w http.ResponseWriter, s *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.Token.String(),
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie (logout).
func ClearCookie(w http.ResponseWriter) { clearCookie(w) }
