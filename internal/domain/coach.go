package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coach is a bookable coaching slot. Availability is a single boolean:
// IsBooked true with a Peserta means a real booking, IsBooked true without a
// Peserta means the owner blocked the slot.
type Coach struct {
	ID          uuid.UUID  `json:"coach_id"`
	UserID      uuid.UUID  `json:"user_id"`              // owner
	PesertaID   *uuid.UUID `json:"peserta_id,omitempty"` // booker
	IsBooked    bool       `json:"is_booked"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Category    Sport      `json:"category"`
	Location    string     `json:"location"`
	Address     string     `json:"address"`
	Date        string     `json:"date"`       // YYYY-MM-DD
	StartTime   string     `json:"start_time"` // HH:MM
	EndTime     string     `json:"end_time"`   // HH:MM
	Rating      float64    `json:"rating"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate checks the creation-time invariants.
func (c *Coach) Validate(now time.Time) *AppError {
	if c.Title == "" || c.Description == "" || c.Location == "" || c.Address == "" {
		return ErrValidation("Semua field harus diisi")
	}
	if !c.Category.Valid() {
		return ErrValidation("Kategori olahraga tidak valid")
	}
	if err := ValidateDate(c.Date); err != nil {
		return ErrValidation("Format tanggal tidak valid (gunakan YYYY-MM-DD)")
	}
	if err := ValidateTime(c.StartTime); err != nil {
		return ErrValidation("Format waktu tidak valid")
	}
	if err := ValidateTime(c.EndTime); err != nil {
		return ErrValidation("Format waktu tidak valid")
	}
	if c.EndTime <= c.StartTime {
		return ErrValidation("Waktu selesai harus lebih besar dari waktu mulai")
	}
	if c.Date < now.Format("2006-01-02") {
		return ErrValidation("Tanggal tidak boleh di masa lalu")
	}
	if c.Price < 0 {
		return ErrValidation("Harga tidak boleh negatif")
	}
	if c.Rating < 0 || c.Rating > 5 {
		return ErrValidation("Rating harus di antara 0 dan 5")
	}
	return nil
}

// Book applies the booking transition in memory. The persisted transition is
// a conditional update keyed on is_booked so concurrent bookings have exactly
// one winner; this method carries the same invariants for callers and tests.
func (c *Coach) Book(actorID uuid.UUID) *AppError {
	if actorID == c.UserID {
		return ErrValidation("Coach tidak bisa booking jadwal sendiri")
	}
	if c.IsBooked {
		return ErrConflict("Jadwal sudah dibooking")
	}
	c.PesertaID = &actorID
	c.IsBooked = true
	return nil
}

// CancelBooking releases the slot. Only the current booker may cancel.
func (c *Coach) CancelBooking(actorID uuid.UUID) *AppError {
	if c.PesertaID == nil || *c.PesertaID != actorID {
		return ErrForbidden("Anda bukan peserta booking ini")
	}
	c.PesertaID = nil
	c.IsBooked = false
	return nil
}

// MarkUnavailable blocks the slot without assigning a booker. Owner only.
func (c *Coach) MarkUnavailable(actorID uuid.UUID) *AppError {
	if actorID != c.UserID {
		return ErrForbidden("Hanya pemilik yang dapat mengubah jadwal ini")
	}
	c.IsBooked = true
	return nil
}

// MarkAvailable frees the slot unconditionally, clearing any booker. An
// existing real booking is kicked out as well.
func (c *Coach) MarkAvailable(actorID uuid.UUID) *AppError {
	if actorID != c.UserID {
		return ErrForbidden("Hanya pemilik yang dapat mengubah jadwal ini")
	}
	c.IsBooked = false
	c.PesertaID = nil
	return nil
}
