package availability

import (
	"errors"
	"time"

	"boothreserve/internal/catalog"

	"github.com/shopspring/decimal"
)

// BoothStatus is the public view of a booth for one event
type BoothStatus string

const (
	BoothAvailable BoothStatus = "available"
	BoothHeld      BoothStatus = "held"
	BoothBooked    BoothStatus = "booked"
	BoothConfirmed BoothStatus = "confirmed"
)

var ErrEventRequired = errors.New("event id is required")

// BoothAvailability is one row of the floor plan projected onto an event
type BoothAvailability struct {
	BoothID   int              `json:"boothId"`
	Category  catalog.Category `json:"category"`
	Price     decimal.Decimal  `json:"price"`
	Position  catalog.Position `json:"position"`
	Status    BoothStatus      `json:"status"`
	HeldUntil *time.Time       `json:"heldUntil,omitempty"`
}
