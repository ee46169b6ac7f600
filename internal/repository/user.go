package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sportivo/platform/internal/domain"
)

type userRepo struct{}

// NewUserRepository returns a pgx-backed UserRepository.
func NewUserRepository() UserRepository {
	return &userRepo{}
}

const userColumns = `id, nama, email, kelamin, tanggal_lahir, nomor_handphone, password_hash, created_at, updated_at`

func (r *userRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error) {
	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error) {
	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepo) Create(ctx context.Context, db DBTX, u *domain.User) error {
	_, err := db.Exec(ctx, `
		INSERT INTO users (id, nama, email, kelamin, tanggal_lahir, nomor_handphone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		u.ID, u.Nama, u.Email, string(u.Kelamin), u.TanggalLahir, u.NomorHandphone, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, db DBTX, u *domain.User) error {
	_, err := db.Exec(ctx, `
		UPDATE users
		SET nama = $2, kelamin = $3, tanggal_lahir = $4, nomor_handphone = $5, updated_at = now()
		WHERE id = $1`,
		u.ID, u.Nama, string(u.Kelamin), u.TanggalLahir, u.NomorHandphone)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var kelamin string
	err := row.Scan(&u.ID, &u.Nama, &u.Email, &kelamin, &u.TanggalLahir,
		&u.NomorHandphone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Kelamin = domain.Gender(kelamin)
	return &u, nil
}
