package promos

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePromoRequest struct {
	Code              string           `json:"code" binding:"required,min=3,max=64"`
	Description       string           `json:"description" binding:"required,max=500"`
	DiscountType      DiscountType     `json:"discount_type" binding:"required,oneof=percent flat"`
	Discount          decimal.Decimal  `json:"discount"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	IsActive          *bool            `json:"is_active"`
	Scope             Scope            `json:"scope" binding:"omitempty,oneof=all specific"`
	ApplicableEvents  []string         `json:"applicable_events" binding:"omitempty,dive,required"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
}

type UpdatePromoRequest struct {
	Code              *string          `json:"code" binding:"omitempty,min=3,max=64"`
	Description       *string          `json:"description" binding:"omitempty,max=500"`
	DiscountType      *DiscountType    `json:"discount_type" binding:"omitempty,oneof=percent flat"`
	Discount          *decimal.Decimal `json:"discount"`
	StartDate         *time.Time       `json:"start_date"`
	EndDate           *time.Time       `json:"end_date"`
	IsActive          *bool            `json:"is_active"`
	Scope             *Scope           `json:"scope" binding:"omitempty,oneof=all specific"`
	ApplicableEvents  []string         `json:"applicable_events" binding:"omitempty,dive,required"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	// ClearMaxDiscount removes the cap
	ClearMaxDiscount bool `json:"clear_max_discount"`
}

type ListPromosQuery struct {
	IsActive     *bool  `form:"isActive"`
	DiscountType string `form:"discountType" binding:"omitempty,oneof=percent flat"`
}

type ValidatePromoQuery struct {
	EventID string `form:"eventId"`
	Amount  string `form:"amount" binding:"omitempty,numeric"`
}
