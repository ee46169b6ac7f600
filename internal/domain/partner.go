package domain

import (
	"time"

	"github.com/google/uuid"
)

// PartnerPost is a "find a sport partner" post. Participants are a separate
// table; the total is always computed, never stored.
type PartnerPost struct {
	ID          uuid.UUID `json:"post_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Sport     `json:"category"`
	Tanggal     string    `json:"tanggal"`     // YYYY-MM-DD
	JamMulai    string    `json:"jam_mulai"`   // HH:MM
	JamSelesai  string    `json:"jam_selesai"` // HH:MM
	Lokasi      string    `json:"lokasi"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks creation-time invariants.
func (p *PartnerPost) Validate() *AppError {
	if p.Title == "" || p.Description == "" || p.Lokasi == "" {
		return ErrValidation("Semua field harus diisi")
	}
	if !p.Category.Valid() {
		return ErrValidation("Kategori olahraga tidak valid")
	}
	if err := ValidateDate(p.Tanggal); err != nil {
		return ErrValidation("Format tanggal tidak valid")
	}
	if ValidateTime(p.JamMulai) != nil || ValidateTime(p.JamSelesai) != nil {
		return ErrValidation("Format waktu tidak valid")
	}
	return nil
}

// PostParticipant is one user joined to one post; (post, participant) is
// unique.
type PostParticipant struct {
	ID            int64     `json:"id"`
	PostID        uuid.UUID `json:"post_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	JoinedAt      time.Time `json:"joined_at"`
}
