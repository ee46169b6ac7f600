package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sportivo/platform/internal/domain"
)

type coachRepo struct{}

// NewCoachRepository returns a pgx-backed CoachRepository.
func NewCoachRepository() CoachRepository {
	return &coachRepo{}
}

const coachColumns = `coach_id, user_id, peserta_id, is_booked, title, description, price, category,
	location, address, date, start_time, end_time, rating, created_at, updated_at`

func (r *coachRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Coach, error) {
	row := db.QueryRow(ctx, `SELECT `+coachColumns+` FROM coaches WHERE coach_id = $1`, id)
	return scanCoach(row)
}

func (r *coachRepo) Create(ctx context.Context, db DBTX, c *domain.Coach) error {
	_, err := db.Exec(ctx, `
		INSERT INTO coaches (coach_id, user_id, peserta_id, is_booked, title, description, price, category,
			location, address, date, start_time, end_time, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())`,
		c.ID, c.UserID, c.PesertaID, c.IsBooked, c.Title, c.Description, c.Price, string(c.Category),
		c.Location, c.Address, c.Date, c.StartTime, c.EndTime, c.Rating)
	if err != nil {
		return fmt.Errorf("insert coach: %w", err)
	}
	return nil
}

// Search builds the filter dynamically the same way balances updates do:
// numbered placeholders appended per active filter.
func (r *coachRepo) Search(ctx context.Context, db DBTX, f CoachSearch) ([]domain.Coach, error) {
	where := []string{"true"}
	args := []interface{}{}
	argIdx := 1

	add := func(clause string, val interface{}) {
		where = append(where, fmt.Sprintf(clause, argIdx))
		args = append(args, val)
		argIdx++
	}

	if f.Query != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+f.Query+"%")
	}
	if f.Location != "" {
		add("location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.Category != "" {
		add("category = $%d", string(f.Category))
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Available != nil {
		add("is_booked = $%d", !*f.Available)
	}
	if f.OwnerID != nil {
		add("user_id = $%d", *f.OwnerID)
	}

	order := "created_at DESC"
	switch f.Sort {
	case "price_asc":
		order = "price ASC"
	case "price_desc":
		order = "price DESC"
	case "rating":
		order = "rating DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM coaches WHERE %s ORDER BY %s`,
		coachColumns, strings.Join(where, " AND "), order)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search coaches: %w", err)
	}
	defer rows.Close()

	var coaches []domain.Coach
	for rows.Next() {
		c, err := scanCoach(rows)
		if err != nil {
			return nil, err
		}
		coaches = append(coaches, *c)
	}
	return coaches, rows.Err()
}

// Book is the compare-and-swap booking transition: only one writer can move
// is_booked from false to true.
func (r *coachRepo) Book(ctx context.Context, db DBTX, coachID, pesertaID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE coaches
		SET is_booked = true, peserta_id = $2, updated_at = now()
		WHERE coach_id = $1 AND is_booked = false`,
		coachID, pesertaID)
	if err != nil {
		return false, fmt.Errorf("book coach: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *coachRepo) CancelBooking(ctx context.Context, db DBTX, coachID, pesertaID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE coaches
		SET is_booked = false, peserta_id = NULL, updated_at = now()
		WHERE coach_id = $1 AND peserta_id = $2`,
		coachID, pesertaID)
	if err != nil {
		return false, fmt.Errorf("cancel coach booking: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *coachRepo) SetBlocked(ctx context.Context, db DBTX, coachID uuid.UUID, blocked bool) error {
	var err error
	if blocked {
		_, err = db.Exec(ctx, `
			UPDATE coaches SET is_booked = true, updated_at = now() WHERE coach_id = $1`, coachID)
	} else {
		_, err = db.Exec(ctx, `
			UPDATE coaches SET is_booked = false, peserta_id = NULL, updated_at = now() WHERE coach_id = $1`, coachID)
	}
	if err != nil {
		return fmt.Errorf("set coach blocked: %w", err)
	}
	return nil
}

func (r *coachRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM coaches WHERE coach_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}
	return nil
}

func scanCoach(row pgx.Row) (*domain.Coach, error) {
	var c domain.Coach
	var category string
	err := row.Scan(&c.ID, &c.UserID, &c.PesertaID, &c.IsBooked, &c.Title, &c.Description,
		&c.Price, &category, &c.Location, &c.Address, &c.Date, &c.StartTime, &c.EndTime,
		&c.Rating, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan coach: %w", err)
	}
	c.Category = domain.Sport(category)
	return &c, nil
}
