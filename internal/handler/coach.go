package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
	"github.com/sportivo/platform/internal/service"
)

// CoachHandler serves the coach booking endpoints.
type CoachHandler struct {
	svc *service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(svc *service.CoachService) *CoachHandler {
	return &CoachHandler{svc: svc}
}

// Create handles POST /coach/add/.
func (h *CoachHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CoachInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Semua field harus diisi"))
		return
	}

	coach, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Jadwal coach berhasil dibuat", map[string]interface{}{"coach": coach})
}

// Get handles GET /coach/{id}/.
func (h *CoachHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	coach, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"coach": coach})
}

// Search handles GET /coach/api/search/.
func (h *CoachHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.CoachSearch{
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Category: domain.Sport(q.Get("category")),
		Sort:     q.Get("sort"),
	}
	if f.Category != "" && !f.Category.Valid() {
		RespondError(w, domain.ErrValidation("Kategori olahraga tidak valid"))
		return
	}
	if v := q.Get("min_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondError(w, domain.ErrValidation("min_price harus berupa angka"))
			return
		}
		f.MinPrice = &p
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondError(w, domain.ErrValidation("max_price harus berupa angka"))
			return
		}
		f.MaxPrice = &p
	}
	if v := q.Get("available"); v != "" {
		available := v == "true" || v == "1"
		f.Available = &available
	}
	if q.Get("view") == "mine" {
		actorID := auth.UserIDFromContext(r.Context())
		if actorID == uuid.Nil {
			RespondError(w, domain.ErrAuthRequired("Anda harus login terlebih dahulu"))
			return
		}
		f.OwnerID = &actorID
	}

	coaches, err := h.svc.Search(r.Context(), f)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"coaches": coaches,
		"count":   len(coaches),
	})
}

// Book handles POST /coach/book-coach/{id}/.
func (h *CoachHandler) Book(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := h.svc.Book(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Booking berhasil", nil)
}

// CancelBooking handles POST /coach/cancel-booking/{id}/.
func (h *CoachHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.CancelBooking(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Booking berhasil dibatalkan", nil)
}

// MarkAvailable handles POST /coach/mark-available/{id}/.
func (h *CoachHandler) MarkAvailable(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.MarkAvailable(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Jadwal tersedia kembali", nil)
}

// MarkUnavailable handles POST /coach/mark-unavailable/{id}/.
func (h *CoachHandler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.MarkUnavailable(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Jadwal ditandai tidak tersedia", nil)
}

// Delete handles POST /coach/delete-coach/{id}/.
func (h *CoachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Jadwal berhasil dihapus", nil)
}

func urlUUID(r *http.Request, param string) (uuid.UUID, error) {
	return parseUUID(chi.URLParam(r, param), "resource")
}

func parseUUID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrNotFound(entity, raw)
	}
	return id, nil
}
