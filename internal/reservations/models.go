package reservations

import (
	"time"

	"boothreserve/internal/catalog"
	"boothreserve/internal/promos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Contact struct {
	PersonName string `json:"person_name" gorm:"size:200;not null"`
	Email      string `json:"email" gorm:"size:255;not null"`
	Phone      string `json:"phone" gorm:"size:50;not null"`
	IsLocal    bool   `json:"is_local" gorm:"not null"`
}

type Socials struct {
	Instagram string `json:"instagram,omitempty" gorm:"size:255"`
	Facebook  string `json:"facebook,omitempty" gorm:"size:255"`
}

// CategoryDetails holds the fields that only some booth categories use
type CategoryDetails struct {
	FoodItems    string `json:"food_items,omitempty"`
	ClothingType string `json:"clothing_type,omitempty"`
	JewelryType  string `json:"jewelry_type,omitempty"`
	CraftDetails string `json:"craft_details,omitempty"`
	NeedPower    bool   `json:"need_power,omitempty"`
	Watts        int    `json:"watts,omitempty"`
}

// Pricing is always derived from the catalog price, never from the request
type Pricing struct {
	BasePrice         decimal.Decimal     `json:"base_price" gorm:"type:numeric(10,2);not null"`
	PromoCode         string              `json:"promo_code,omitempty" gorm:"size:64"`
	PromoDiscount     decimal.Decimal     `json:"promo_discount" gorm:"type:numeric(10,2);not null"`
	PromoDiscountType promos.DiscountType `json:"promo_discount_type,omitempty" gorm:"type:varchar(16)"`
	FinalAmount       decimal.Decimal     `json:"final_amount" gorm:"type:numeric(10,2);not null"`
}

type Reservation struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	EventID         string           `json:"event_id" gorm:"size:64;not null;index:idx_reservations_event_status,priority:1"`
	BoothID         int              `json:"booth_id" gorm:"not null"`
	Category        catalog.Category `json:"category" gorm:"type:varchar(16);not null"`
	VendorRef       string           `json:"vendor_ref" gorm:"size:128;not null;index"`
	VendorName      string           `json:"vendor_name" gorm:"size:200;not null"`
	Contact         Contact          `json:"contact" gorm:"embedded;embeddedPrefix:contact_"`
	Socials         Socials          `json:"socials" gorm:"embedded;embeddedPrefix:socials_"`
	Details         CategoryDetails  `json:"details" gorm:"type:jsonb;serializer:json"`
	Notes           string           `json:"notes,omitempty" gorm:"type:text"`
	TermsAcceptedAt time.Time        `json:"terms_accepted_at" gorm:"not null"`
	Status          Status           `json:"status" gorm:"type:varchar(20);not null;index:idx_reservations_event_status,priority:2"`
	HoldExpiresAt   *time.Time       `json:"hold_expires_at,omitempty" gorm:"index"`
	Pricing         Pricing          `json:"pricing" gorm:"embedded"`
	StatusChangedAt time.Time        `json:"status_changed_at" gorm:"not null"`
	ConfirmedAt     *time.Time       `json:"confirmed_at,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate generates UUID before creating a reservation
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// HoldLapsed reports whether r is a hold whose deadline is strictly before now.
// A hold is still live at the deadline instant itself.
func (r *Reservation) HoldLapsed(now time.Time) bool {
	return r.Status == StatusHeld && r.HoldExpiresAt != nil && now.After(*r.HoldExpiresAt)
}

// ListFilter narrows an operator listing. Zero values mean "any".
type ListFilter struct {
	Query    string
	Status   Status
	Category catalog.Category
	EventID  string
	Page     int
	Limit    int
}

func (f ListFilter) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// StatusCounts is the number of reservations per status, plus the total
type StatusCounts struct {
	EventID  string           `json:"event_id,omitempty"`
	Total    int64            `json:"total"`
	ByStatus map[Status]int64 `json:"by_status"`
}
