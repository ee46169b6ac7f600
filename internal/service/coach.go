package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// CoachService handles coaching slots and the booking state machine.
type CoachService struct {
	db      repository.DB
	coaches repository.CoachRepository
	outbox  repository.OutboxRepository
}

// NewCoachService creates a new CoachService.
func NewCoachService(db repository.DB, coaches repository.CoachRepository, outbox repository.OutboxRepository) *CoachService {
	return &CoachService{db: db, coaches: coaches, outbox: outbox}
}

// CoachInput holds the coach creation fields.
type CoachInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Address     string  `json:"address"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Rating      float64 `json:"rating"`
}

// Create registers a new coaching slot owned by the actor.
func (s *CoachService) Create(ctx context.Context, ownerID uuid.UUID, input CoachInput) (*domain.Coach, error) {
	coach := &domain.Coach{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    domain.Sport(input.Category),
		Location:    input.Location,
		Address:     input.Address,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Rating:      input.Rating,
	}
	if appErr := coach.Validate(time.Now()); appErr != nil {
		return nil, appErr
	}
	if err := s.coaches.Create(ctx, s.db, coach); err != nil {
		return nil, domain.ErrInternal("create coach", err)
	}
	return coach, nil
}

// Get returns one coach by id.
func (s *CoachService) Get(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	coach, err := s.coaches.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find coach", err)
	}
	if coach == nil {
		return nil, domain.ErrNotFound("coach", id.String())
	}
	return coach, nil
}

// Search runs the filtered coach query.
func (s *CoachService) Search(ctx context.Context, f repository.CoachSearch) ([]domain.Coach, error) {
	coaches, err := s.coaches.Search(ctx, s.db, f)
	if err != nil {
		return nil, domain.ErrInternal("search coaches", err)
	}
	return coaches, nil
}

// Book reserves the slot for the actor. The persisted transition is a
// conditional update, so two concurrent bookings on the same slot have
// exactly one winner; the loser gets the already-booked conflict.
func (s *CoachService) Book(ctx context.Context, coachID, actorID uuid.UUID) (*domain.Coach, error) {
	coach, err := s.Get(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if appErr := coach.Book(actorID); appErr != nil {
		return nil, appErr
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	won, err := s.coaches.Book(ctx, tx, coachID, actorID)
	if err != nil {
		return nil, domain.ErrInternal("book coach", err)
	}
	if !won {
		return nil, domain.ErrConflict("Jadwal sudah dibooking")
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewCoachBookedEvent(coachID, actorID)); err != nil {
		return nil, domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return coach, nil
}

// CancelBooking releases the slot. Only the current booker may cancel; anyone
// else gets 403 and the slot state is untouched.
func (s *CoachService) CancelBooking(ctx context.Context, coachID, actorID uuid.UUID) error {
	coach, err := s.Get(ctx, coachID)
	if err != nil {
		return err
	}
	if coach.PesertaID == nil || *coach.PesertaID != actorID {
		return domain.ErrForbidden("Anda bukan peserta booking ini")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	ok, err := s.coaches.CancelBooking(ctx, tx, coachID, actorID)
	if err != nil {
		return domain.ErrInternal("cancel booking", err)
	}
	if !ok {
		// Booker changed between the read and the guarded update.
		return domain.ErrForbidden("Anda bukan peserta booking ini")
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewCoachCancelledEvent(coachID, actorID)); err != nil {
		return domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	return nil
}

// MarkUnavailable blocks the slot without a booker. Owner only.
func (s *CoachService) MarkUnavailable(ctx context.Context, coachID, actorID uuid.UUID) error {
	coach, err := s.Get(ctx, coachID)
	if err != nil {
		return err
	}
	if appErr := coach.MarkUnavailable(actorID); appErr != nil {
		return appErr
	}
	if err := s.coaches.SetBlocked(ctx, s.db, coachID, true); err != nil {
		return domain.ErrInternal("mark unavailable", err)
	}
	return nil
}

// MarkAvailable frees the slot, clearing any booker (including a real one).
// Owner only.
func (s *CoachService) MarkAvailable(ctx context.Context, coachID, actorID uuid.UUID) error {
	coach, err := s.Get(ctx, coachID)
	if err != nil {
		return err
	}
	if appErr := coach.MarkAvailable(actorID); appErr != nil {
		return appErr
	}
	if err := s.coaches.SetBlocked(ctx, s.db, coachID, false); err != nil {
		return domain.ErrInternal("mark available", err)
	}
	return nil
}

// Delete removes the coach. Owner only.
func (s *CoachService) Delete(ctx context.Context, coachID, actorID uuid.UUID) error {
	coach, err := s.Get(ctx, coachID)
	if err != nil {
		return err
	}
	if coach.UserID != actorID {
		return domain.ErrForbidden("Hanya pemilik yang dapat menghapus jadwal ini")
	}
	if err := s.coaches.Delete(ctx, s.db, coachID); err != nil {
		return domain.ErrInternal("delete coach", err)
	}
	return nil
}
