package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Passwords are stored bcrypt-hashed and never
// serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Nama           string    `json:"nama"`
	Email          string    `json:"email"`
	Kelamin        Gender    `json:"kelamin"`
	TanggalLahir   string    `json:"tanggal_lahir"` // YYYY-MM-DD
	NomorHandphone string    `json:"nomor_handphone"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is a server-side session row. The token travels in a cookie; the
// profile fields are a denormalized cache written at login so rendering does
// not need a user lookup. The cache is refreshed on profile edit and dropped
// wholesale on logout or self-heal.
type Session struct {
	Token          uuid.UUID `json:"token"`
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	Nama           string    `json:"nama"`
	Kelamin        Gender    `json:"kelamin"`
	TanggalLahir   string    `json:"tanggal_lahir"`
	NomorHandphone string    `json:"nomor_handphone"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// NewSession creates a session for the user with the denormalized profile
// cache populated.
func NewSession(u *User, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:          uuid.New(),
		UserID:         u.ID,
		Email:          u.Email,
		Nama:           u.Nama,
		Kelamin:        u.Kelamin,
		TanggalLahir:   u.TanggalLahir,
		NomorHandphone: u.NomorHandphone,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}
