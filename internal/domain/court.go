package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Court is a bookable venue. Availability is tracked per (court, date) in
// TimeSlot rows rather than a boolean on the court itself.
type Court struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	SportType    Sport      `json:"sport_type"`
	Location     string     `json:"location"`
	Address      string     `json:"address"`
	PricePerHour int64      `json:"price_per_hour"`
	Facilities   string     `json:"facilities"` // comma separated
	Rating       float64    `json:"rating"`
	Description  string     `json:"description"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	OwnerName    string     `json:"owner_name"`
	OwnerPhone   string     `json:"owner_phone"` // 628123456789, no plus
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FacilitiesList splits the comma-separated facilities field.
func (c *Court) FacilitiesList() []string {
	var out []string
	for _, f := range strings.Split(c.Facilities, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WhatsAppLink builds a wa.me booking link for the court owner.
func (c *Court) WhatsAppLink(date, clock string) string {
	msg := fmt.Sprintf("Hello, I would like to book the court *%s*", c.Name)
	switch {
	case date != "" && clock != "":
		msg += fmt.Sprintf(" for date *%s* at *%s*", date, clock)
	case date != "":
		msg += fmt.Sprintf(" for date *%s*", date)
	case clock != "":
		msg += fmt.Sprintf(" at *%s*", clock)
	}
	// Keep asterisks literal so WhatsApp renders bold.
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "%2A", "*")
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.OwnerPhone, encoded)
}

// Validate checks creation-time invariants.
func (c *Court) Validate() *AppError {
	if c.Name == "" || c.Location == "" || c.Address == "" || c.OwnerName == "" || c.OwnerPhone == "" {
		return ErrValidation("Semua field harus diisi")
	}
	if !c.SportType.Valid() {
		return ErrValidation("Kategori olahraga tidak valid")
	}
	if c.PricePerHour < 0 {
		return ErrValidation("Harga tidak boleh negatif")
	}
	if c.Rating < 0 || c.Rating > 5 {
		return ErrValidation("Rating harus di antara 0 dan 5")
	}
	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		return ErrValidation("Latitude di luar jangkauan")
	}
	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		return ErrValidation("Longitude di luar jangkauan")
	}
	return nil
}

// TimeSlot is a per-day availability record for a court. Exactly one row
// exists per (court, date); an absent row means the date is available. Slots
// always span the whole day.
type TimeSlot struct {
	ID          int64     `json:"id"`
	CourtID     uuid.UUID `json:"court_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

// Full-day window used for every slot row.
const (
	SlotDayStart = "00:00"
	SlotDayEnd   = "23:59"
)

// TimeLabel renders the slot window for display.
func (s *TimeSlot) TimeLabel() string {
	return fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
}
