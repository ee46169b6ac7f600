package handler

import (
	"net/http"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/service"
)

// EventHandler serves the community event endpoints.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /event/.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	category := domain.Sport(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		RespondError(w, domain.ErrValidation("Unknown sport category"))
		return
	}

	events, err := h.svc.List(r.Context(), category)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// Get handles GET /event/{id}/.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	event, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	schedules, err := h.svc.Schedules(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	_, count, err := h.svc.Registrations(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{
		"event":              event,
		"schedules":          schedules,
		"total_participants": count,
	})
}

// Create handles POST /event/create/.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.EventInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	event, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Event created", map[string]interface{}{"event": event})
}

// Update handles POST /event/{id}/edit/.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.EventInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	event, err := h.svc.Update(r.Context(), id, auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Event updated", map[string]interface{}{"event": event})
}

// Delete handles POST /event/{id}/delete/.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Event deleted", nil)
}

// Join handles POST /event/{id}/ajax/join/.
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		ScheduleID string `json:"schedule_id"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}
	scheduleID, err := parseUUID(input.ScheduleID, "schedule")
	if err != nil {
		RespondError(w, err)
		return
	}

	reg, err := h.svc.Join(r.Context(), id, scheduleID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Joined event", map[string]interface{}{
		"registration_id": reg.ID,
	})
}

// CancelRegistration handles POST /event/{id}/cancel-registration/.
func (h *EventHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	removed, err := h.svc.CancelRegistrations(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "Registration cancelled", map[string]interface{}{
		"removed": removed,
	})
}

// ToggleAvailability handles POST /event/{id}/toggle-availability/.
func (h *EventHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	status, err := h.svc.ToggleAvailability(r.Context(), id, auth.UserIDFromContext(r.Context()), input.IsAvailable)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"status": status})
}

// Schedules handles GET /event/{id}/schedules/.
func (h *EventHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	schedules, err := h.svc.Schedules(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondSuccess(w, "", map[string]interface{}{"schedules": schedules})
}
