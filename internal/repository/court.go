package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sportivo/platform/internal/domain"
)

type courtRepo struct{}

// NewCourtRepository returns a pgx-backed CourtRepository.
func NewCourtRepository() CourtRepository {
	return &courtRepo{}
}

const courtColumns = `id, name, sport_type, location, address, price_per_hour, facilities, rating,
	description, latitude, longitude, owner_name, owner_phone, created_by, created_at, updated_at`

func (r *courtRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Court, error) {
	row := db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1`, id)
	return scanCourt(row)
}

func (r *courtRepo) Create(ctx context.Context, db DBTX, c *domain.Court) error {
	_, err := db.Exec(ctx, `
		INSERT INTO courts (id, name, sport_type, location, address, price_per_hour, facilities, rating,
			description, latitude, longitude, owner_name, owner_phone, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())`,
		c.ID, c.Name, string(c.SportType), c.Location, c.Address, c.PricePerHour, c.Facilities,
		c.Rating, c.Description, c.Latitude, c.Longitude, c.OwnerName, c.OwnerPhone, c.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert court: %w", err)
	}
	return nil
}

func (r *courtRepo) Search(ctx context.Context, db DBTX, f CourtSearch) ([]domain.Court, error) {
	where := []string{"true"}
	args := []interface{}{}
	argIdx := 1

	if f.Query != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%[1]d OR address ILIKE $%[1]d OR location ILIKE $%[1]d)", argIdx))
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if f.Sport != "" {
		where = append(where, fmt.Sprintf("sport_type = $%d", argIdx))
		args = append(args, string(f.Sport))
		argIdx++
	}
	if f.Location != "" {
		where = append(where, fmt.Sprintf("location ILIKE $%d", argIdx))
		args = append(args, "%"+f.Location+"%")
	}

	query := fmt.Sprintf(`SELECT %s FROM courts WHERE %s ORDER BY rating DESC, name ASC`,
		courtColumns, strings.Join(where, " AND "))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search courts: %w", err)
	}
	defer rows.Close()

	var courts []domain.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, *c)
	}
	return courts, rows.Err()
}

func (r *courtRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete court: %w", err)
	}
	return nil
}

func (r *courtRepo) FindSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string) (*domain.TimeSlot, error) {
	row := db.QueryRow(ctx, `
		SELECT id, court_id, date, start_time, end_time, is_available
		FROM time_slots WHERE court_id = $1 AND date = $2`, courtID, date)

	var s domain.TimeSlot
	err := row.Scan(&s.ID, &s.CourtID, &s.Date, &s.StartTime, &s.EndTime, &s.IsAvailable)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan time slot: %w", err)
	}
	return &s, nil
}

// UpsertSlot keeps exactly one full-day row per (court, date); the unique
// constraint makes the one-slot-per-day rule a schema guarantee rather than
// an application-enforced cleanup.
func (r *courtRepo) UpsertSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string, available bool) error {
	_, err := db.Exec(ctx, `
		INSERT INTO time_slots (court_id, date, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (court_id, date)
		DO UPDATE SET start_time = $3, end_time = $4, is_available = $5`,
		courtID, date, domain.SlotDayStart, domain.SlotDayEnd, available)
	if err != nil {
		return fmt.Errorf("upsert time slot: %w", err)
	}
	return nil
}

// BookSlot atomically claims the day: the insert wins when no row exists,
// the conditional update wins only while the existing row is still
// available. Zero rows affected means someone already holds the date.
func (r *courtRepo) BookSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO time_slots (court_id, date, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, false)
		ON CONFLICT (court_id, date)
		DO UPDATE SET is_available = false
		WHERE time_slots.is_available = true`,
		courtID, date, domain.SlotDayStart, domain.SlotDayEnd)
	if err != nil {
		return false, fmt.Errorf("book court slot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanCourt(row pgx.Row) (*domain.Court, error) {
	var c domain.Court
	var sport string
	err := row.Scan(&c.ID, &c.Name, &sport, &c.Location, &c.Address, &c.PricePerHour,
		&c.Facilities, &c.Rating, &c.Description, &c.Latitude, &c.Longitude,
		&c.OwnerName, &c.OwnerPhone, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan court: %w", err)
	}
	c.SportType = domain.Sport(sport)
	return &c, nil
}
