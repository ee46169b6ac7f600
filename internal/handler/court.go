package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
	"github.com/sportivo/platform/internal/service"
)

// CourtHandler serves the court and per-day availability endpoints.
type CourtHandler struct {
	svc *service.CourtService
}

// NewCourtHandler creates a new CourtHandler.
func NewCourtHandler(svc *service.CourtService) *CourtHandler {
	return &CourtHandler{svc: svc}
}

// Create handles POST /court/api/court/add/.
func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CourtInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("All fields are required"))
		return
	}

	court, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Court created", map[string]interface{}{"court": court})
}

// Search handles GET /court/api/court/search/.
func (h *CourtHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.CourtSearch{
		Query:    q.Get("q"),
		Sport:    domain.Sport(q.Get("sport")),
		Location: q.Get("location"),
	}
	if f.Sport != "" && !f.Sport.Valid() {
		RespondError(w, domain.ErrValidation("Unknown sport category"))
		return
	}

	courts, err := h.svc.Search(r.Context(), f)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"courts": courts,
		"count":  len(courts),
	})
}

// Get handles GET /court/api/court/{id}/.
func (h *CourtHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	court, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"court":      court,
		"facilities": court.FacilitiesList(),
	})
}

// GetAvailability handles GET /court/api/court/{id}/availability/?date=….
func (h *CourtHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	a, err := h.svc.GetAvailability(r.Context(), id, r.URL.Query().Get("date"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"available": a.Available,
		"date":      a.Date,
		"time":      a.TimeLabel,
	})
}

// SetAvailability handles POST /court/api/court/{id}/availability/set/.
func (h *CourtHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Date        string `json:"date"`
		IsAvailable bool   `json:"is_available"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	a, err := h.svc.SetAvailability(r.Context(), id, input.Date, input.IsAvailable, auth.UserIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"available": a.Available})
}

// CreateBooking handles POST /court/api/bookings/.
func (h *CourtHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CourtID string `json:"court_id"`
		Date    string `json:"date"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	courtID, err := uuid.Parse(input.CourtID)
	if err != nil {
		RespondError(w, domain.ErrNotFound("court", input.CourtID))
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), courtID, input.Date)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Booking created successfully", map[string]interface{}{
		"booking": booking,
	})
}

// WhatsAppLink handles GET /court/api/court/{id}/whatsapp/?date=…&time=….
func (h *CourtHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	q := r.URL.Query()
	link, err := h.svc.WhatsAppLink(r.Context(), id, q.Get("date"), q.Get("time"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"url": link})
}

// Delete handles POST /court/api/court/{id}/delete/.
func (h *CourtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Court deleted", nil)
}
