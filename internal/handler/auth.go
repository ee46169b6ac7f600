package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/service"
)

// AuthHandler serves login, registration, logout and profile.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /register/.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Semua field harus diisi"))
		return
	}

	if _, err := h.svc.Register(r.Context(), input); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Registrasi berhasil", map[string]interface{}{
		"redirect_url": "/login/",
	})
}

// Login handles POST /login/. A successful login sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Semua field harus diisi"))
		return
	}

	session, err := h.svc.Login(r.Context(), input, clientIP(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	auth.SetCookie(w, session)
	RespondSuccess(w, "Login berhasil", map[string]interface{}{
		"redirect_url": "/",
	})
}

// Logout handles GET/POST /logout/. The session is flushed and the cookie
// cleared regardless of whether the token was still valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s := auth.SessionFromContext(r.Context()); s != nil {
		if err := h.svc.Logout(r.Context(), s.Token); err != nil {
			RespondError(w, err)
			return
		}
	}
	auth.ClearCookie(w)
	RespondSuccess(w, "Logout berhasil", map[string]interface{}{
		"redirect_url": "/login/",
	})
}

// GetProfile handles GET /profile/.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"user": user})
}

// UpdateProfile handles POST /profile/edit/.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Semua field harus diisi"))
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	user, err := h.svc.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Profil berhasil diperbarui", map[string]interface{}{"user": user})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
