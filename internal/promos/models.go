package promos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFlat    DiscountType = "flat"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercent || d == DiscountTypeFlat
}

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeSpecific Scope = "specific"
)

// IsValid checks if the scope is valid
func (s Scope) IsValid() bool {
	return s == ScopeAll || s == ScopeSpecific
}

type Promo struct {
	ID                uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Code              string              `json:"code" gorm:"size:64;not null;uniqueIndex:ux_promos_code"`
	Description       string              `json:"description" gorm:"type:text"`
	DiscountType      DiscountType        `json:"discount_type" gorm:"type:varchar(16);not null"`
	Discount          decimal.Decimal     `json:"discount" gorm:"type:numeric(10,2);not null"`
	StartDate         time.Time           `json:"start_date" gorm:"not null"`
	EndDate           time.Time           `json:"end_date" gorm:"not null"`
	IsActive          bool                `json:"is_active" gorm:"not null"`
	Scope             Scope               `json:"scope" gorm:"type:varchar(16);not null"`
	ApplicableEvents  []string            `json:"applicable_events" gorm:"type:jsonb;serializer:json"`
	MinPurchaseAmount decimal.Decimal     `json:"min_purchase_amount" gorm:"type:numeric(10,2);not null"`
	MaxDiscountAmount decimal.NullDecimal `json:"max_discount_amount" gorm:"type:numeric(10,2)"`
	CreatedAt         time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Promo) TableName() string {
	return "promos"
}

// BeforeSave keeps ids and codes normalized however the row is written
func (p *Promo) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Code = NormalizeCode(p.Code)
	if p.Scope == "" {
		p.Scope = ScopeAll
	}
	return nil
}

// AppliesTo reports whether the promo may be used for the event
func (p *Promo) AppliesTo(eventID string) bool {
	if p.Scope != ScopeSpecific {
		return true
	}
	for _, id := range p.ApplicableEvents {
		if id == eventID {
			return true
		}
	}
	return false
}

type ListQuery struct {
	IsActive     *bool
	DiscountType DiscountType
}
