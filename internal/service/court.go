package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// CourtService handles courts and the per-day availability map.
type CourtService struct {
	db     repository.DB
	courts repository.CourtRepository
	outbox repository.OutboxRepository
}

// NewCourtService creates a new CourtService.
func NewCourtService(db repository.DB, courts repository.CourtRepository, outbox repository.OutboxRepository) *CourtService {
	return &CourtService{db: db, courts: courts, outbox: outbox}
}

// CourtInput holds the court creation fields.
type CourtInput struct {
	Name         string   `json:"name"`
	SportType    string   `json:"sport_type"`
	Location     string   `json:"location"`
	Address      string   `json:"address"`
	PricePerHour int64    `json:"price_per_hour"`
	Facilities   string   `json:"facilities"`
	Rating       float64  `json:"rating"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	OwnerName    string   `json:"owner_name"`
	OwnerPhone   string   `json:"owner_phone"`
}

// Create registers a new court owned by the actor.
func (s *CourtService) Create(ctx context.Context, actorID uuid.UUID, input CourtInput) (*domain.Court, error) {
	court := &domain.Court{
		ID:           uuid.New(),
		Name:         input.Name,
		SportType:    domain.Sport(input.SportType),
		Location:     input.Location,
		Address:      input.Address,
		PricePerHour: input.PricePerHour,
		Facilities:   input.Facilities,
		Rating:       input.Rating,
		Description:  input.Description,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		OwnerName:    input.OwnerName,
		OwnerPhone:   input.OwnerPhone,
		CreatedBy:    &actorID,
	}
	if appErr := court.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.courts.Create(ctx, s.db, court); err != nil {
		return nil, domain.ErrInternal("create court", err)
	}
	return court, nil
}

// Get returns one court by id.
func (s *CourtService) Get(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	court, err := s.courts.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find court", err)
	}
	if court == nil {
		return nil, domain.ErrNotFound("court", id.String())
	}
	return court, nil
}

// Search runs the filtered court query.
func (s *CourtService) Search(ctx context.Context, f repository.CourtSearch) ([]domain.Court, error) {
	courts, err := s.courts.Search(ctx, s.db, f)
	if err != nil {
		return nil, domain.ErrInternal("search courts", err)
	}
	return courts, nil
}

// Availability is the per-date answer for a court.
type Availability struct {
	CourtID   uuid.UUID `json:"court_id"`
	Date      string    `json:"date"`
	Available bool      `json:"available"`
	TimeLabel string    `json:"time,omitempty"`
}

// GetAvailability looks up the (court, date) slot. An absent row means the
// date is available by convention.
func (s *CourtService) GetAvailability(ctx context.Context, courtID uuid.UUID, date string) (*Availability, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, domain.ErrValidation("Invalid date format (use YYYY-MM-DD)")
	}
	if _, err := s.Get(ctx, courtID); err != nil {
		return nil, err
	}

	slot, err := s.courts.FindSlot(ctx, s.db, courtID, date)
	if err != nil {
		return nil, domain.ErrInternal("find slot", err)
	}

	a := &Availability{CourtID: courtID, Date: date, Available: true}
	if slot != nil {
		a.Available = slot.IsAvailable
		a.TimeLabel = slot.TimeLabel()
	}
	return a, nil
}

// SetAvailability upserts the single full-day slot for (court, date). Owner
// only; courts without a recorded owner cannot be toggled.
func (s *CourtService) SetAvailability(ctx context.Context, courtID uuid.UUID, date string, available bool, actorID uuid.UUID) (*Availability, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, domain.ErrValidation("Invalid date format (use YYYY-MM-DD)")
	}
	court, err := s.Get(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if court.CreatedBy == nil || *court.CreatedBy != actorID {
		return nil, domain.ErrForbidden("Only the court owner can change availability")
	}

	if err := s.courts.UpsertSlot(ctx, s.db, courtID, date, available); err != nil {
		return nil, domain.ErrInternal("upsert slot", err)
	}
	return &Availability{CourtID: courtID, Date: date, Available: available}, nil
}

// Booking is the response payload of a successful court booking.
type Booking struct {
	CourtName string `json:"court_name"`
	Date      string `json:"date"`
}

// CreateBooking claims the (court, date) slot atomically. No booker identity
// is stored on the slot; the booking is anonymous at the data level.
func (s *CourtService) CreateBooking(ctx context.Context, courtID uuid.UUID, date string) (*Booking, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, domain.ErrValidation("Invalid date format (use YYYY-MM-DD)")
	}
	court, err := s.Get(ctx, courtID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	won, err := s.courts.BookSlot(ctx, tx, courtID, date)
	if err != nil {
		return nil, domain.ErrInternal("book slot", err)
	}
	if !won {
		return nil, domain.ErrConflict("Court is not available on the selected date")
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewCourtBookedEvent(courtID, date)); err != nil {
		return nil, domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return &Booking{CourtName: court.Name, Date: date}, nil
}

// WhatsAppLink builds the owner-contact link for a court.
func (s *CourtService) WhatsAppLink(ctx context.Context, courtID uuid.UUID, date, clock string) (string, error) {
	court, err := s.Get(ctx, courtID)
	if err != nil {
		return "", err
	}
	if date != "" {
		if err := domain.ValidateDate(date); err != nil {
			return "", domain.ErrValidation("Invalid date format (use YYYY-MM-DD)")
		}
	}
	if clock != "" {
		if err := domain.ValidateTime(clock); err != nil {
			return "", domain.ErrValidation("Invalid time format (use HH:MM)")
		}
	}
	return court.WhatsAppLink(date, clock), nil
}

// Delete removes the court. Owner only.
func (s *CourtService) Delete(ctx context.Context, courtID, actorID uuid.UUID) error {
	court, err := s.Get(ctx, courtID)
	if err != nil {
		return err
	}
	if court.CreatedBy == nil || *court.CreatedBy != actorID {
		return domain.ErrForbidden("Only the court owner can delete this court")
	}
	if err := s.courts.Delete(ctx, s.db, courtID); err != nil {
		return domain.ErrInternal("delete court", err)
	}
	return nil
}
