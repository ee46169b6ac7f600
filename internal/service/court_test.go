package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportivo/platform/internal/domain"
)

func newCourtService() (*CourtService, *fakeCourtRepo, *fakeOutbox) {
	courts := newFakeCourtRepo()
	outbox := &fakeOutbox{}
	return NewCourtService(fakeDB{}, courts, outbox), courts, outbox
}

func validCourtInput() CourtInput {
	return CourtInput{
		Name:         "GOR Senayan",
		SportType:    "badminton",
		Location:     "Jakarta",
		Address:      "Jl. Pintu Satu",
		PricePerHour: 100000,
		Facilities:   "parking, shower, locker",
		Rating:       4.2,
		Description:  "Indoor badminton hall",
		OwnerName:    "Pak Joko",
		OwnerPhone:   "628123456789",
	}
}

func TestCourtAvailabilityAbsentMeansAvailable(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	a, err := svc.GetAvailability(context.Background(), court.ID, "2026-09-15")
	require.NoError(t, err)
	assert.True(t, a.Available)
}

func TestCourtSetAvailabilityOwnerOnly(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	_, err = svc.SetAvailability(context.Background(), court.ID, "2026-09-15", false, uuid.New())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)

	a, err := svc.SetAvailability(context.Background(), court.ID, "2026-09-15", false, owner)
	require.NoError(t, err)
	assert.False(t, a.Available)

	got, err := svc.GetAvailability(context.Background(), court.ID, "2026-09-15")
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "00:00 - 23:59", got.TimeLabel)
}

func TestCourtBookingConflicts(t *testing.T) {
	svc, _, outbox := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	booking, err := svc.CreateBooking(context.Background(), court.ID, "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, "GOR Senayan", booking.CourtName)
	assert.Equal(t, "2026-09-15", booking.Date)

	_, err = svc.CreateBooking(context.Background(), court.ID, "2026-09-15")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Court is not available on the selected date", appErr.Message)

	// Another date is unaffected.
	_, err = svc.CreateBooking(context.Background(), court.ID, "2026-09-16")
	require.NoError(t, err)

	assert.Contains(t, outbox.eventTypes(), domain.EventCourtBooked)
}

func TestCourtBookingRespectsOwnerBlock(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	_, err = svc.SetAvailability(context.Background(), court.ID, "2026-09-15", false, owner)
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), court.ID, "2026-09-15")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// Owner reopens the date; booking succeeds again.
	_, err = svc.SetAvailability(context.Background(), court.ID, "2026-09-15", true, owner)
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), court.ID, "2026-09-15")
	require.NoError(t, err)
}

func TestConcurrentCourtBookingsHaveOneWinner(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateBooking(context.Background(), court.ID, "2026-09-15"); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one concurrent booking must win")
}

func TestCourtWhatsAppLink(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()
	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	link, err := svc.WhatsAppLink(context.Background(), court.ID, "2026-09-15", "08:00")
	require.NoError(t, err)
	assert.Contains(t, link, "https://wa.me/628123456789?text=")
	assert.Contains(t, link, "*GOR+Senayan*")
	assert.Contains(t, link, "*2026-09-15*")
	assert.Contains(t, link, "*08%3A00*")
}

func TestCourtValidationAndBadDate(t *testing.T) {
	svc, _, _ := newCourtService()
	owner := uuid.New()

	in := validCourtInput()
	in.Name = ""
	_, err := svc.Create(context.Background(), owner, in)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Semua field harus diisi", appErr.Message)

	court, err := svc.Create(context.Background(), owner, validCourtInput())
	require.NoError(t, err)

	_, err = svc.GetAvailability(context.Background(), court.ID, "15-09-2026")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
}
