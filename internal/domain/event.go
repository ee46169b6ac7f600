package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an organized community sports event with dated schedules.
type Event struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	SportType       Sport       `json:"sport_type"`
	Description     string      `json:"description"`
	City            string      `json:"city"`
	FullAddress     string      `json:"full_address"`
	EntryPrice      int64       `json:"entry_price"`
	Activities      string      `json:"activities"` // comma separated
	Rating          float64     `json:"rating"`
	Status          EventStatus `json:"status"`
	MaxParticipants int         `json:"max_participants"`
	MinParticipants int         `json:"min_participants"`
	OrganizerID     uuid.UUID   `json:"organizer_id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Validate checks creation-time invariants.
func (e *Event) Validate() *AppError {
	if e.Name == "" || e.City == "" || e.FullAddress == "" {
		return ErrValidation("Semua field harus diisi")
	}
	if !e.SportType.Valid() {
		return ErrValidation("Kategori olahraga tidak valid")
	}
	if e.EntryPrice < 0 {
		return ErrValidation("Harga tidak boleh negatif")
	}
	if e.Rating < 0 || e.Rating > 5 {
		return ErrValidation("Rating harus di antara 0 dan 5")
	}
	if e.MaxParticipants < 0 || e.MinParticipants < 0 || (e.MaxParticipants > 0 && e.MinParticipants > e.MaxParticipants) {
		return ErrValidation("Batas peserta tidak valid")
	}
	if e.Status != "" && !e.Status.Valid() {
		return ErrValidation("Status event tidak valid")
	}
	return nil
}

// EventSchedule is one date slot of an event; (event, date) is unique.
type EventSchedule struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	IsAvailable bool      `json:"is_available"`
}

// EventRegistration records one user joining one schedule of an event.
// (event, user, schedule) is unique.
type EventRegistration struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	UserID       uuid.UUID `json:"user_id"`
	ScheduleID   uuid.UUID `json:"schedule_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
