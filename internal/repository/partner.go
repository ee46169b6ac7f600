package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sportivo/platform/internal/domain"
)

type partnerRepo struct{}

// NewPartnerRepository returns a pgx-backed PartnerRepository.
func NewPartnerRepository() PartnerRepository {
	return &partnerRepo{}
}

const partnerColumns = `id, creator_id, title, description, category, tanggal, jam_mulai, jam_selesai, lokasi, created_at`

func (r *partnerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PartnerPost, error) {
	row := db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partner_posts WHERE id = $1`, id)
	return scanPartnerPost(row)
}

func (r *partnerRepo) Create(ctx context.Context, db DBTX, p *domain.PartnerPost) error {
	_, err := db.Exec(ctx, `
		INSERT INTO partner_posts (id, creator_id, title, description, category, tanggal, jam_mulai, jam_selesai, lokasi, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		p.ID, p.CreatorID, p.Title, p.Description, string(p.Category),
		p.Tanggal, p.JamMulai, p.JamSelesai, p.Lokasi)
	if err != nil {
		return fmt.Errorf("insert partner post: %w", err)
	}
	return nil
}

func (r *partnerRepo) List(ctx context.Context, db DBTX) ([]domain.PartnerPost, error) {
	rows, err := db.Query(ctx, `SELECT `+partnerColumns+` FROM partner_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list partner posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.PartnerPost
	for rows.Next() {
		p, err := scanPartnerPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *partnerRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM partner_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner post: %w", err)
	}
	return nil
}

// Join leans on the unique (post, participant) index: zero rows affected
// means the user already joined, never a lost write.
func (r *partnerRepo) Join(ctx context.Context, db DBTX, postID, userID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO post_participants (post_id, participant_id, joined_at)
		VALUES ($1, $2, now())
		ON CONFLICT (post_id, participant_id) DO NOTHING`,
		postID, userID)
	if err != nil {
		return false, fmt.Errorf("join partner post: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *partnerRepo) Leave(ctx context.Context, db DBTX, postID, userID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		DELETE FROM post_participants WHERE post_id = $1 AND participant_id = $2`,
		postID, userID)
	if err != nil {
		return fmt.Errorf("leave partner post: %w", err)
	}
	return nil
}

func (r *partnerRepo) IsParticipant(ctx context.Context, db DBTX, postID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM post_participants WHERE post_id = $1 AND participant_id = $2
		)`, postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check partner participant: %w", err)
	}
	return exists, nil
}

func (r *partnerRepo) CountParticipants(ctx context.Context, db DBTX, postID uuid.UUID) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM post_participants WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count partner participants: %w", err)
	}
	return count, nil
}

func (r *partnerRepo) ListParticipants(ctx context.Context, db DBTX, postID uuid.UUID) ([]domain.User, error) {
	rows, err := db.Query(ctx, `
		SELECT u.id, u.nama, u.email, u.kelamin, u.tanggal_lahir, u.nomor_handphone, u.password_hash, u.created_at, u.updated_at
		FROM post_participants pp
		JOIN users u ON u.id = pp.participant_id
		WHERE pp.post_id = $1
		ORDER BY pp.joined_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list partner participants: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanPartnerPost(row pgx.Row) (*domain.PartnerPost, error) {
	var p domain.PartnerPost
	var category string
	err := row.Scan(&p.ID, &p.CreatorID, &p.Title, &p.Description, &category,
		&p.Tanggal, &p.JamMulai, &p.JamSelesai, &p.Lokasi, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan partner post: %w", err)
	}
	p.Category = domain.Sport(category)
	return &p, nil
}
