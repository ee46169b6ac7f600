package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
)

// UserRepository provides access to users.
type UserRepository interface {
	// FindByID returns a user by ID, or nil when no row exists.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error)

	// FindByEmail returns a user by email, or nil when no row exists.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, db DBTX, user *domain.User) error

	// UpdateProfile updates the mutable profile fields.
	UpdateProfile(ctx context.Context, db DBTX, user *domain.User) error
}

// SessionRepository provides access to server-side sessions.
type SessionRepository interface {
	// Find returns a session by token, or nil when no row exists.
	Find(ctx context.Context, db DBTX, token uuid.UUID) (*domain.Session, error)

	// Create inserts a new session.
	Create(ctx context.Context, db DBTX, s *domain.Session) error

	// UpdateProfileCache refreshes the denormalized profile fields on every
	// session belonging to the user.
	UpdateProfileCache(ctx context.Context, db DBTX, user *domain.User) error

	// Delete removes a session (logout, expiry, self-heal).
	Delete(ctx context.Context, db DBTX, token uuid.UUID) error
}

// CoachSearch carries the coach search/filter parameters.
type CoachSearch struct {
	Query     string
	Location  string
	Category  domain.Sport
	MinPrice  *int64
	MaxPrice  *int64
	Available *bool
	OwnerID   *uuid.UUID // view=mine
	Sort      string     // price_asc, price_desc, rating, newest
}

// CoachRepository provides access to coaches. All booking transitions are
// single conditional statements so two concurrent writers cannot both win.
type CoachRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Coach, error)
	Create(ctx context.Context, db DBTX, c *domain.Coach) error
	Search(ctx context.Context, db DBTX, f CoachSearch) ([]domain.Coach, error)

	// Book sets the booker if and only if the slot is not booked yet.
	// Returns false when the conditional update matched no row.
	Book(ctx context.Context, db DBTX, coachID, pesertaID uuid.UUID) (bool, error)

	// CancelBooking clears the booking if and only if pesertaID is the
	// current booker.
	CancelBooking(ctx context.Context, db DBTX, coachID, pesertaID uuid.UUID) (bool, error)

	// SetBlocked marks the slot unavailable without a booker (blocked=true)
	// or clears both flags unconditionally (blocked=false).
	SetBlocked(ctx context.Context, db DBTX, coachID uuid.UUID, blocked bool) error

	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// CourtSearch carries court search parameters.
type CourtSearch struct {
	Query    string
	Sport    domain.Sport
	Location string
}

// CourtRepository provides access to courts and their per-day slots.
type CourtRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Court, error)
	Create(ctx context.Context, db DBTX, c *domain.Court) error
	Search(ctx context.Context, db DBTX, f CourtSearch) ([]domain.Court, error)
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error

	// FindSlot returns the slot row for (court, date), or nil when the date
	// has no row (available by convention).
	FindSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string) (*domain.TimeSlot, error)

	// UpsertSlot writes the single full-day slot for (court, date),
	// replacing whatever availability the row had.
	UpsertSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string, available bool) error

	// BookSlot flips the (court, date) slot to unavailable if and only if it
	// is currently available or absent. Returns false on conflict.
	BookSlot(ctx context.Context, db DBTX, courtID uuid.UUID, date string) (bool, error)
}

// EventRepository provides access to events, schedules and registrations.
type EventRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, db DBTX, e *domain.Event) error
	Update(ctx context.Context, db DBTX, e *domain.Event) error
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
	List(ctx context.Context, db DBTX, category domain.Sport) ([]domain.Event, error)

	SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.EventStatus) error

	CreateSchedule(ctx context.Context, db DBTX, s *domain.EventSchedule) error
	ListSchedules(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.EventSchedule, error)
	FindSchedule(ctx context.Context, db DBTX, scheduleID uuid.UUID) (*domain.EventSchedule, error)

	// Register inserts a registration unless the (event, user, schedule)
	// triple already exists. Returns false on duplicate.
	Register(ctx context.Context, db DBTX, r *domain.EventRegistration) (bool, error)

	// CancelRegistrations deletes all of the user's registrations for the
	// event and reports how many were removed.
	CancelRegistrations(ctx context.Context, db DBTX, eventID, userID uuid.UUID) (int64, error)

	CountRegistrations(ctx context.Context, db DBTX, eventID uuid.UUID) (int64, error)
	ListRegistrations(ctx context.Context, db DBTX, eventID uuid.UUID) ([]domain.EventRegistration, error)
}

// PartnerRepository provides access to partner posts and participants.
type PartnerRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PartnerPost, error)
	Create(ctx context.Context, db DBTX, p *domain.PartnerPost) error
	List(ctx context.Context, db DBTX) ([]domain.PartnerPost, error)
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error

	// Join inserts a participant row unless it already exists. Returns false
	// on duplicate.
	Join(ctx context.Context, db DBTX, postID, userID uuid.UUID) (bool, error)

	// Leave removes the participant row; deleting a row that does not exist
	// is not an error.
	Leave(ctx context.Context, db DBTX, postID, userID uuid.UUID) error

	IsParticipant(ctx context.Context, db DBTX, postID, userID uuid.UUID) (bool, error)
	CountParticipants(ctx context.Context, db DBTX, postID uuid.UUID) (int64, error)
	ListParticipants(ctx context.Context, db DBTX, postID uuid.UUID) ([]domain.User, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// state change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished removes processed events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// OutboxRow is a fetched outbox event with its sequence id.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}
