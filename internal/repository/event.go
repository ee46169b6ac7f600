package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sportivo/platform/internal/domain"
)

type eventRepo struct{}

// NewEventRepository returns a pgx-backed EventRepository.
func NewEventRepository() EventRepository {
	return &eventRepo{}
}

const eventColumns = `id, name, sport_type, description, city, full_address, entry_price, activities,
	rating, status, max_participants, min_participants, organizer_id, created_at, updated_at`

func (r *eventRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Event, error) {
	row := db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *eventRepo) Create(ctx context.Context, db DBTX, e *domain.Event) error {
	_, err := db.Exec(ctx, `
		INSERT INTO events (id, name, sport_type, description, city, full_address, entry_price, activities,
			rating, status, max_participants, min_participants, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`,
		e.ID, e.Name, string(e.SportType), e.Description, e.City, e.FullAddress, e.EntryPrice,
		e.Activities, e.Rating, string(e.Status), e.MaxParticipants, e.MinParticipants, e.OrganizerID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepo) Update(ctx context.Context, db DBTX, e *domain.Event) error {
	_, err := db.Exec(ctx, `
		UPDATE events
		SET name = $2, sport_type = $3, description = $4, city = $5, full_address = $6,
			entry_price = $7, activities = $8, rating = $9, max_participants = $10,
			min_participants = $11, updated_at = now()
		WHERE id = $1`,
		e.ID, e.Name, string(e.SportType), e.Description, e.City, e.FullAddress,
		e.EntryPrice, e.Activities, e.Rating, e.MaxParticipants, e.MinParticipants)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *eventRepo) List(ctx context.Context, db DBTX, category domain.Sport) ([]domain.Event, error) {
	where := "true"
	args := []interface{}{}
	if category != "" {
		where = "sport_type = $1"
		args = append(args, string(category))
	}

	rows, err := db.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM events WHERE %s ORDER BY created_at DESC`, eventColumns, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.EventStatus) error {
	_, err := db.Exec(ctx, `UPDATE events SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return fmt.Errorf("set event status: %w", err)
	}
	return nil
}

func (r *eventRepo) CreateSchedule(ctx context.Context, db DBTX, s *domain.EventSchedule) error {
	_, err := db.Exec(ctx, `
		INSERT INTO event_schedules (id, event_id, date, is_available)
		VALUES ($1, $2, $3, $4)`,
		s.ID, s.EventID, s.Date, s.IsAvailable)
	if err != nil {
		return fmt.Errorf("insert event schedule: %w", err)
	}
	return nil
}

func (r *eventRepo) ListSchedules(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.EventSchedule, error) {
	rows, err := db.Query(ctx, `
		SELECT id, event_id, date, is_available
		FROM event_schedules WHERE event_id = $1 ORDER BY date ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.EventSchedule
	for rows.Next() {
		var s domain.EventSchedule
		if err := rows.Scan(&s.ID, &s.EventID, &s.Date, &s.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan event schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *eventRepo) FindSchedule(ctx context.Context, db DBTX, scheduleID uuid.UUID) (*domain.EventSchedule, error) {
	row := db.QueryRow(ctx, `
		SELECT id, event_id, date, is_available
		FROM event_schedules WHERE id = $1`, scheduleID)

	var s domain.EventSchedule
	err := row.Scan(&s.ID, &s.EventID, &s.Date, &s.IsAvailable)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan event schedule: %w", err)
	}
	return &s, nil
}

// Register relies on the unique (event, user, schedule) index: a duplicate
// join surfaces as a constraint violation, not a read-then-write race.
func (r *eventRepo) Register(ctx context.Context, db DBTX, reg *domain.EventRegistration) (bool, error) {
	_, err := db.Exec(ctx, `
		INSERT INTO event_registrations (id, event_id, user_id, schedule_id, registered_at)
		VALUES ($1, $2, $3, $4, now())`,
		reg.ID, reg.EventID, reg.UserID, reg.ScheduleID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("insert event registration: %w", err)
	}
	return true, nil
}

func (r *eventRepo) CancelRegistrations(ctx context.Context, db DBTX, eventID, userID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("cancel event registrations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *eventRepo) CountRegistrations(ctx context.Context, db DBTX, eventID uuid.UUID) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count event registrations: %w", err)
	}
	return count, nil
}

func (r *eventRepo) ListRegistrations(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.EventRegistration, error) {
	rows, err := db.Query(ctx, `
		SELECT id, event_id, user_id, schedule_id, registered_at
		FROM event_registrations WHERE event_id = $1 ORDER BY registered_at DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.EventRegistration
	for rows.Next() {
		var reg domain.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.ScheduleID, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan event registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var sport, status string
	err := row.Scan(&e.ID, &e.Name, &sport, &e.Description, &e.City, &e.FullAddress,
		&e.EntryPrice, &e.Activities, &e.Rating, &status, &e.MaxParticipants,
		&e.MinParticipants, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	e.SportType = domain.Sport(sport)
	e.Status = domain.EventStatus(status)
	return &e, nil
}
