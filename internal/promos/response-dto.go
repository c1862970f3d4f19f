package promos

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromoResponse struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	DiscountType      DiscountType     `json:"discount_type"`
	Discount          decimal.Decimal  `json:"discount"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	IsActive          bool             `json:"is_active"`
	Scope             Scope            `json:"scope"`
	ApplicableEvents  []string         `json:"applicable_events"`
	MinPurchaseAmount decimal.Decimal  `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type ValidationResponse struct {
	Valid          bool             `json:"valid"`
	Reason         Reason           `json:"reason,omitempty"`
	Message        string           `json:"message"`
	Code           string           `json:"code"`
	Description    string           `json:"description,omitempty"`
	DiscountType   DiscountType     `json:"discount_type,omitempty"`
	Discount       *decimal.Decimal `json:"discount,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
	FinalAmount    *decimal.Decimal `json:"final_amount,omitempty"`
}

func toPromoResponse(p *Promo) PromoResponse {
	resp := PromoResponse{
		ID:                p.ID.String(),
		Code:              p.Code,
		Description:       p.Description,
		DiscountType:      p.DiscountType,
		Discount:          p.Discount,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		IsActive:          p.IsActive,
		Scope:             p.Scope,
		ApplicableEvents:  p.ApplicableEvents,
		MinPurchaseAmount: p.MinPurchaseAmount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if resp.ApplicableEvents == nil {
		resp.ApplicableEvents = []string{}
	}
	if p.MaxDiscountAmount.Valid {
		max := p.MaxDiscountAmount.Decimal
		resp.MaxDiscountAmount = &max
	}
	return resp
}
