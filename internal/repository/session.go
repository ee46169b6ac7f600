package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sportivo/platform/internal/domain"
)

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

func (r *sessionRepo) Find(ctx context.Context, db DBTX, token uuid.UUID) (*domain.Session, error) {
	row := db.QueryRow(ctx, `
		SELECT token, user_id, email, nama, kelamin, tanggal_lahir, nomor_handphone, created_at, expires_at
		FROM sessions WHERE token = $1`, token)

	var s domain.Session
	var kelamin string
	err := row.Scan(&s.Token, &s.UserID, &s.Email, &s.Nama, &kelamin,
		&s.TanggalLahir, &s.NomorHandphone, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.Kelamin = domain.Gender(kelamin)
	return &s, nil
}

func (r *sessionRepo) Create(ctx context.Context, db DBTX, s *domain.Session) error {
	_, err := db.Exec(ctx, `
		INSERT INTO sessions (token, user_id, email, nama, kelamin, tanggal_lahir, nomor_handphone, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.Token, s.UserID, s.Email, s.Nama, string(s.Kelamin),
		s.TanggalLahir, s.NomorHandphone, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) UpdateProfileCache(ctx context.Context, db DBTX, u *domain.User) error {
	_, err := db.Exec(ctx, `
		UPDATE sessions
		SET nama = $2, kelamin = $3, tanggal_lahir = $4, nomor_handphone = $5
		WHERE user_id = $1`,
		u.ID, u.Nama, string(u.Kelamin), u.TanggalLahir, u.NomorHandphone)
	if err != nil {
		return fmt.Errorf("refresh session cache: %w", err)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, db DBTX, token uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
