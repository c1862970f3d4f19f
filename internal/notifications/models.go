package notifications

import (
	"encoding/json"
	"time"

	"boothreserve/internal/reservations"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies what happened to a reservation
type Type string

const (
	TypeReservationHeld          Type = "reservation.held"
	TypeReservationStatusChanged Type = "reservation.status_changed"
	TypeReservationExpired       Type = "reservation.expired"
)

const schemaVersion = "1"

// TypeFor derives the message type from the status a reservation was left in
func TypeFor(status reservations.Status) Type {
	switch status {
	case reservations.StatusHeld:
		return TypeReservationHeld
	case reservations.StatusExpired:
		return TypeReservationExpired
	default:
		return TypeReservationStatusChanged
	}
}

// ReservationEvent is the message published for every committed reservation write
type ReservationEvent struct {
	ID      uuid.UUID `json:"id"`
	Type    Type      `json:"type"`
	Version string    `json:"version"`

	ReservationID uuid.UUID           `json:"reservation_id"`
	EventID       string              `json:"event_id"`
	BoothID       int                 `json:"booth_id"`
	Status        reservations.Status `json:"status"`
	HoldExpiresAt *time.Time          `json:"hold_expires_at,omitempty"`
	FinalAmount   decimal.Decimal     `json:"final_amount"`
	PromoCode     string              `json:"promo_code,omitempty"`

	// Recipient
	VendorRef   string `json:"vendor_ref"`
	VendorName  string `json:"vendor_name"`
	VendorEmail string `json:"vendor_email"`

	StatusChangedAt time.Time `json:"status_changed_at"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type EventBuilder struct {
	event *ReservationEvent
}

func NewEventBuilder(occurredAt time.Time) *EventBuilder {
	return &EventBuilder{
		event: &ReservationEvent{
			ID:         uuid.New(),
			Version:    schemaVersion,
			OccurredAt: occurredAt,
		},
	}
}

// ForReservation copies the reservation snapshot and derives the type from its status
func (b *EventBuilder) ForReservation(r *reservations.Reservation) *EventBuilder {
	b.event.Type = TypeFor(r.Status)
	b.event.ReservationID = r.ID
	b.event.EventID = r.EventID
	b.event.BoothID = r.BoothID
	b.event.Status = r.Status
	b.event.HoldExpiresAt = r.HoldExpiresAt
	b.event.FinalAmount = r.Pricing.FinalAmount
	b.event.PromoCode = r.Pricing.PromoCode
	b.event.VendorRef = r.VendorRef
	b.event.VendorName = r.VendorName
	b.event.VendorEmail = r.Contact.Email
	b.event.StatusChangedAt = r.StatusChangedAt
	return b
}

func (b *EventBuilder) Build() *ReservationEvent {
	return b.event
}

// GetPartitionKey keeps every message for one reservation on one partition, in order
func (e *ReservationEvent) GetPartitionKey() string {
	return e.ReservationID.String()
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
