package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// EventService handles community events, schedules and registrations.
type EventService struct {
	db     repository.DB
	events repository.EventRepository
	outbox repository.OutboxRepository
}

// NewEventService creates a new EventService.
func NewEventService(db repository.DB, events repository.EventRepository, outbox repository.OutboxRepository) *EventService {
	return &EventService{db: db, events: events, outbox: outbox}
}

// EventInput holds the event creation/edit fields.
type EventInput struct {
	Name            string   `json:"name"`
	SportType       string   `json:"sport_type"`
	Description     string   `json:"description"`
	City            string   `json:"city"`
	FullAddress     string   `json:"full_address"`
	EntryPrice      int64    `json:"entry_price"`
	Activities      string   `json:"activities"`
	Rating          float64  `json:"rating"`
	MaxParticipants int      `json:"max_participants"`
	MinParticipants int      `json:"min_participants"`
	Schedules       []string `json:"schedules"` // YYYY-MM-DD per entry
}

// Create registers a new event organized by the actor, with its date
// schedules.
func (s *EventService) Create(ctx context.Context, organizerID uuid.UUID, input EventInput) (*domain.Event, error) {
	event := &domain.Event{
		ID:              uuid.New(),
		Name:            input.Name,
		SportType:       domain.Sport(input.SportType),
		Description:     input.Description,
		City:            input.City,
		FullAddress:     input.FullAddress,
		EntryPrice:      input.EntryPrice,
		Activities:      input.Activities,
		Rating:          input.Rating,
		Status:          domain.EventAvailable,
		MaxParticipants: input.MaxParticipants,
		MinParticipants: input.MinParticipants,
		OrganizerID:     organizerID,
	}
	if appErr := event.Validate(); appErr != nil {
		return nil, appErr
	}
	for _, date := range input.Schedules {
		if err := domain.ValidateDate(date); err != nil {
			return nil, domain.ErrValidation("Invalid schedule date format (use YYYY-MM-DD)")
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.events.Create(ctx, tx, event); err != nil {
		return nil, domain.ErrInternal("create event", err)
	}
	for _, date := range input.Schedules {
		schedule := &domain.EventSchedule{
			ID:          uuid.New(),
			EventID:     event.ID,
			Date:        date,
			IsAvailable: true,
		}
		if err := s.events.CreateSchedule(ctx, tx, schedule); err != nil {
			return nil, domain.ErrInternal("create schedule", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return event, nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find event", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound("event", id.String())
	}
	return event, nil
}

// List returns events, optionally filtered by sport category.
func (s *EventService) List(ctx context.Context, category domain.Sport) ([]domain.Event, error) {
	events, err := s.events.List(ctx, s.db, category)
	if err != nil {
		return nil, domain.ErrInternal("list events", err)
	}
	return events, nil
}

// Update edits an event. Organizer only.
func (s *EventService) Update(ctx context.Context, eventID, actorID uuid.UUID, input EventInput) (*domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actorID {
		return nil, domain.ErrForbidden("Only the organizer can modify this event")
	}

	event.Name = input.Name
	event.SportType = domain.Sport(input.SportType)
	event.Description = input.Description
	event.City = input.City
	event.FullAddress = input.FullAddress
	event.EntryPrice = input.EntryPrice
	event.Activities = input.Activities
	event.Rating = input.Rating
	event.MaxParticipants = input.MaxParticipants
	event.MinParticipants = input.MinParticipants

	if appErr := event.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.events.Update(ctx, s.db, event); err != nil {
		return nil, domain.ErrInternal("update event", err)
	}
	return event, nil
}

// Delete removes an event and everything under it. Organizer only.
func (s *EventService) Delete(ctx context.Context, eventID, actorID uuid.UUID) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID {
		return domain.ErrForbidden("Only the organizer can delete this event")
	}
	if err := s.events.Delete(ctx, s.db, eventID); err != nil {
		return domain.ErrInternal("delete event", err)
	}
	return nil
}

// Schedules returns the event's date slots.
func (s *EventService) Schedules(ctx context.Context, eventID uuid.UUID) ([]domain.EventSchedule, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	schedules, err := s.events.ListSchedules(ctx, s.db, eventID)
	if err != nil {
		return nil, domain.ErrInternal("list schedules", err)
	}
	return schedules, nil
}

// Join registers the actor on one schedule of the event. The (event, user,
// schedule) triple is unique; a duplicate join is a conflict. Capacity is not
// checked on this path, matching the established client contract.
func (s *EventService) Join(ctx context.Context, eventID, scheduleID, actorID uuid.UUID) (*domain.EventRegistration, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	schedule, err := s.events.FindSchedule(ctx, s.db, scheduleID)
	if err != nil {
		return nil, domain.ErrInternal("find schedule", err)
	}
	if schedule == nil || schedule.EventID != eventID {
		return nil, domain.ErrNotFound("schedule", scheduleID.String())
	}

	reg := &domain.EventRegistration{
		ID:         uuid.New(),
		EventID:    eventID,
		UserID:     actorID,
		ScheduleID: scheduleID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	created, err := s.events.Register(ctx, tx, reg)
	if err != nil {
		return nil, domain.ErrInternal("register", err)
	}
	if !created {
		return nil, domain.ErrConflict("You have already joined this schedule")
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewEventJoinedEvent(eventID, actorID, scheduleID)); err != nil {
		return nil, domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return reg, nil
}

// CancelRegistrations removes all of the actor's registrations for the event,
// across every schedule, and reports how many were removed.
func (s *EventService) CancelRegistrations(ctx context.Context, eventID, actorID uuid.UUID) (int64, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	removed, err := s.events.CancelRegistrations(ctx, tx, eventID, actorID)
	if err != nil {
		return 0, domain.ErrInternal("cancel registrations", err)
	}
	if removed > 0 {
		if err := s.outbox.Insert(ctx, tx, domain.NewEventLeftEvent(eventID, actorID, int(removed))); err != nil {
			return 0, domain.ErrInternal("record event", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}

	return removed, nil
}

// ToggleAvailability flips the event status. Organizer only.
func (s *EventService) ToggleAvailability(ctx context.Context, eventID, actorID uuid.UUID, available bool) (domain.EventStatus, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event.OrganizerID != actorID {
		return "", domain.ErrForbidden("Only the organizer can modify this event")
	}

	status := domain.EventUnavailable
	if available {
		status = domain.EventAvailable
	}
	if err := s.events.SetStatus(ctx, s.db, eventID, status); err != nil {
		return "", domain.ErrInternal("set status", err)
	}
	return status, nil
}

// Registrations returns the event's registrations with the computed count.
func (s *EventService) Registrations(ctx context.Context, eventID uuid.UUID) ([]domain.EventRegistration, int64, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, 0, err
	}
	regs, err := s.events.ListRegistrations(ctx, s.db, eventID)
	if err != nil {
		return nil, 0, domain.ErrInternal("list registrations", err)
	}
	count, err := s.events.CountRegistrations(ctx, s.db, eventID)
	if err != nil {
		return nil, 0, domain.ErrInternal("count registrations", err)
	}
	return regs, count, nil
}
