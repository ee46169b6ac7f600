package handler

import (
	"net/http"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/service"
)

// PartnerHandler serves the find-a-sport-partner endpoints.
type PartnerHandler struct {
	svc *service.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(svc *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

// List handles GET /sport-partner/.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// Get handles GET /sport-partner/post/{id}/.
func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"post": post})
}

// Create handles POST /sport-partner/post/create/.
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.PartnerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Semua field harus diisi"))
		return
	}

	post, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Post berhasil dibuat", map[string]interface{}{"post": post})
}

// Join handles POST /sport-partner/post/{id}/join/.
func (h *PartnerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Join(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Berhasil bergabung", nil)
}

// Leave handles POST /sport-partner/post/{id}/leave/.
func (h *PartnerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Leave(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Berhasil keluar dari post", nil)
}

// Participants handles GET /sport-partner/post/{id}/participants/.
func (h *PartnerHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	participants, err := h.svc.Participants(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"participants": participants,
		"count":        len(participants),
	})
}

// Delete handles POST /sport-partner/post/{id}/delete/.
func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Post berhasil dihapus", nil)
}
