package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types published through the outbox.
type EventType string

const (
	EventUserRegistered EventType = "sportivo.user.registered"
	EventCoachBooked    EventType = "sportivo.coach.booked"
	EventCoachCancelled EventType = "sportivo.coach.booking_cancelled"
	EventCourtBooked    EventType = "sportivo.court.booked"
	EventEventJoined    EventType = "sportivo.event.joined"
	EventEventLeft      EventType = "sportivo.event.registration_cancelled"
	EventPartnerJoined  EventType = "sportivo.partner.joined"
	EventPartnerLeft    EventType = "sportivo.partner.left"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateUser    AggregateType = "user"
	AggregateCoach   AggregateType = "coach"
	AggregateCourt   AggregateType = "court"
	AggregateEvent   AggregateType = "event"
	AggregatePartner AggregateType = "partner_post"
)

// OutboxDraft is the payload written to the event_outbox table inside the
// same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func newDraft(agg AggregateType, aggID string, evt EventType, payload interface{}) OutboxDraft {
	raw, _ := json.Marshal(payload)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: agg,
		AggregateID:   aggID,
		EventType:     evt,
		PartitionKey:  aggID,
		Payload:       raw,
		OccurredAt:    time.Now(),
	}
}

// NewCoachBookedEvent records a successful coach booking.
func NewCoachBookedEvent(coachID, pesertaID uuid.UUID) OutboxDraft {
	return newDraft(AggregateCoach, coachID.String(), EventCoachBooked, map[string]string{
		"coach_id":   coachID.String(),
		"peserta_id": pesertaID.String(),
	})
}

// NewCoachCancelledEvent records a booking cancellation.
func NewCoachCancelledEvent(coachID, pesertaID uuid.UUID) OutboxDraft {
	return newDraft(AggregateCoach, coachID.String(), EventCoachCancelled, map[string]string{
		"coach_id":   coachID.String(),
		"peserta_id": pesertaID.String(),
	})
}

// NewCourtBookedEvent records a court day booking. The booking is anonymous
// at the data level, so only court and date are carried.
func NewCourtBookedEvent(courtID uuid.UUID, date string) OutboxDraft {
	return newDraft(AggregateCourt, courtID.String(), EventCourtBooked, map[string]string{
		"court_id": courtID.String(),
		"date":     date,
	})
}

// NewEventJoinedEvent records an event registration.
func NewEventJoinedEvent(eventID, userID, scheduleID uuid.UUID) OutboxDraft {
	return newDraft(AggregateEvent, eventID.String(), EventEventJoined, map[string]string{
		"event_id":    eventID.String(),
		"user_id":     userID.String(),
		"schedule_id": scheduleID.String(),
	})
}

// NewEventLeftEvent records a registration cancellation covering removed rows.
func NewEventLeftEvent(eventID, userID uuid.UUID, removed int) OutboxDraft {
	return newDraft(AggregateEvent, eventID.String(), EventEventLeft, map[string]interface{}{
		"event_id": eventID.String(),
		"user_id":  userID.String(),
		"removed":  removed,
	})
}

// NewPartnerJoinedEvent records a user joining a partner post.
func NewPartnerJoinedEvent(postID, userID uuid.UUID) OutboxDraft {
	return newDraft(AggregatePartner, postID.String(), EventPartnerJoined, map[string]string{
		"post_id": postID.String(),
		"user_id": userID.String(),
	})
}

// NewPartnerLeftEvent records a user leaving a partner post.
func NewPartnerLeftEvent(postID, userID uuid.UUID) OutboxDraft {
	return newDraft(AggregatePartner, postID.String(), EventPartnerLeft, map[string]string{
		"post_id": postID.String(),
		"user_id": userID.String(),
	})
}

// NewUserRegisteredEvent records a new account.
func NewUserRegisteredEvent(userID uuid.UUID, email string) OutboxDraft {
	return newDraft(AggregateUser, userID.String(), EventUserRegistered, map[string]string{
		"user_id": userID.String(),
		"email":   email,
	})
}
