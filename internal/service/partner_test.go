package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportivo/platform/internal/domain"
)

func newPartnerService() (*PartnerService, *fakePartnerRepo, *fakeOutbox) {
	posts := newFakePartnerRepo()
	outbox := &fakeOutbox{}
	return NewPartnerService(fakeDB{}, posts, outbox), posts, outbox
}

func validPartnerInput() PartnerInput {
	return PartnerInput{
		Title:       "Cari lawan tenis",
		Description: "Main santai sabtu pagi",
		Category:    "tennis",
		Tanggal:     "2026-09-19",
		JamMulai:    "07:00",
		JamSelesai:  "09:00",
		Lokasi:      "Lapangan Gelora",
	}
}

func TestPartnerCreatorCannotJoinOwnPost(t *testing.T) {
	svc, _, _ := newPartnerService()
	creator := uuid.New()
	post, err := svc.Create(context.Background(), creator, validPartnerInput())
	require.NoError(t, err)

	err = svc.Join(context.Background(), post.ID, creator)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Anda tidak bisa bergabung dengan post sendiri", appErr.Message)
}

func TestPartnerDuplicateJoinConflicts(t *testing.T) {
	svc, _, outbox := newPartnerService()
	creator := uuid.New()
	post, err := svc.Create(context.Background(), creator, validPartnerInput())
	require.NoError(t, err)

	user := uuid.New()
	require.NoError(t, svc.Join(context.Background(), post.ID, user))

	err = svc.Join(context.Background(), post.ID, user)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Anda sudah bergabung dengan post ini", appErr.Message)

	assert.Contains(t, outbox.eventTypes(), domain.EventPartnerJoined)
}

func TestPartnerLeaveIsIdempotent(t *testing.T) {
	svc, _, outbox := newPartnerService()
	creator := uuid.New()
	post, err := svc.Create(context.Background(), creator, validPartnerInput())
	require.NoError(t, err)

	user := uuid.New()

	// Leaving without ever joining still succeeds.
	require.NoError(t, svc.Leave(context.Background(), post.ID, user))
	assert.NotContains(t, outbox.eventTypes(), domain.EventPartnerLeft)

	require.NoError(t, svc.Join(context.Background(), post.ID, user))
	require.NoError(t, svc.Leave(context.Background(), post.ID, user))
	assert.Contains(t, outbox.eventTypes(), domain.EventPartnerLeft)

	// And again after a real leave.
	require.NoError(t, svc.Leave(context.Background(), post.ID, user))
}

func TestPartnerParticipantCountComputed(t *testing.T) {
	svc, _, _ := newPartnerService()
	creator := uuid.New()
	post, err := svc.Create(context.Background(), creator, validPartnerInput())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Join(context.Background(), post.ID, uuid.New()))
	}

	view, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.TotalParticipants)

	participants, err := svc.Participants(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 3)
}

func TestPartnerDeleteCreatorOnly(t *testing.T) {
	svc, posts, _ := newPartnerService()
	creator := uuid.New()
	post, err := svc.Create(context.Background(), creator, validPartnerInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), post.ID, uuid.New())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)

	require.NoError(t, svc.Delete(context.Background(), post.ID, creator))
	stored, _ := posts.FindByID(context.Background(), nil, post.ID)
	assert.Nil(t, stored)
}

func TestPartnerValidation(t *testing.T) {
	svc, _, _ := newPartnerService()

	in := validPartnerInput()
	in.JamMulai = "7am"
	_, err := svc.Create(context.Background(), uuid.New(), in)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Format waktu tidak valid", appErr.Message)

	err = svc.Join(context.Background(), uuid.New(), uuid.New())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
