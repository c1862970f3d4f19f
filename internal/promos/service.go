package promos

import (
	"context"
	"fmt"
	"strings"

	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoResponse, error)
	GetPromo(ctx context.Context, id string) (*PromoResponse, error)
	ListPromos(ctx context.Context, query ListPromosQuery) ([]PromoResponse, error)
	UpdatePromo(ctx context.Context, id string, req UpdatePromoRequest) (*PromoResponse, error)
	DeletePromo(ctx context.Context, id string) error

	// ValidateCode answers "does this code work" without reserving anything.
	// With an amount the full evaluation runs; without one the minimum check is skipped.
	ValidateCode(ctx context.Context, code string, query ValidatePromoQuery) (*ValidationResponse, error)
}

type service struct {
	repo      Repository
	evaluator *Evaluator
	clock     clock.Clock
	log       *logger.Logger
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		evaluator: NewEvaluator(repo),
		clock:     clk,
		log:       logger.GetDefault().WithComponent("promos"),
	}
}

func (s *service) CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoResponse, error) {
	promo := &Promo{
		Code:              NormalizeCode(req.Code),
		Description:       strings.TrimSpace(req.Description),
		DiscountType:      req.DiscountType,
		Discount:          req.Discount,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          true,
		Scope:             req.Scope,
		ApplicableEvents:  req.ApplicableEvents,
		MinPurchaseAmount: decimal.Zero,
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	if promo.Scope == "" {
		promo.Scope = ScopeAll
	}
	if req.MinPurchaseAmount != nil {
		promo.MinPurchaseAmount = *req.MinPurchaseAmount
	}
	if req.MaxDiscountAmount != nil {
		promo.MaxDiscountAmount = decimal.NewNullDecimal(*req.MaxDiscountAmount)
	}

	if err := validatePromo(promo); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Promo created", "promo_id", promo.ID.String(), "code", promo.Code)
	resp := toPromoResponse(promo)
	return &resp, nil
}

func (s *service) GetPromo(ctx context.Context, id string) (*PromoResponse, error) {
	promo, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPromoResponse(promo)
	return &resp, nil
}

func (s *service) ListPromos(ctx context.Context, query ListPromosQuery) ([]PromoResponse, error) {
	promos, err := s.repo.List(ctx, ListQuery{
		IsActive:     query.IsActive,
		DiscountType: DiscountType(query.DiscountType),
	})
	if err != nil {
		return nil, err
	}

	result := make([]PromoResponse, 0, len(promos))
	for i := range promos {
		result = append(result, toPromoResponse(&promos[i]))
	}
	return result, nil
}

func (s *service) UpdatePromo(ctx context.Context, id string, req UpdatePromoRequest) (*PromoResponse, error) {
	promo, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		promo.Code = NormalizeCode(*req.Code)
	}
	if req.Description != nil {
		promo.Description = strings.TrimSpace(*req.Description)
	}
	if req.DiscountType != nil {
		promo.DiscountType = *req.DiscountType
	}
	if req.Discount != nil {
		promo.Discount = *req.Discount
	}
	if req.StartDate != nil {
		promo.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		promo.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	if req.Scope != nil {
		promo.Scope = *req.Scope
	}
	if req.ApplicableEvents != nil {
		promo.ApplicableEvents = req.ApplicableEvents
	}
	if req.MinPurchaseAmount != nil {
		promo.MinPurchaseAmount = *req.MinPurchaseAmount
	}
	switch {
	case req.ClearMaxDiscount:
		promo.MaxDiscountAmount = decimal.NullDecimal{}
	case req.MaxDiscountAmount != nil:
		promo.MaxDiscountAmount = decimal.NewNullDecimal(*req.MaxDiscountAmount)
	}

	if err := validatePromo(promo); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Promo updated", "promo_id", promo.ID.String(), "code", promo.Code)
	resp := toPromoResponse(promo)
	return &resp, nil
}

func (s *service) DeletePromo(ctx context.Context, id string) error {
	promoID, err := uuid.Parse(id)
	if err != nil {
		return ErrPromoNotFound
	}
	if err := s.repo.Delete(ctx, promoID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "Promo deleted", "promo_id", id)
	return nil
}

func (s *service) ValidateCode(ctx context.Context, code string, query ValidatePromoQuery) (*ValidationResponse, error) {
	now := s.clock.Now()
	normalized := NormalizeCode(code)

	if query.Amount != "" {
		amount, err := decimal.NewFromString(query.Amount)
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidPromo)
		}

		promo, err := s.evaluator.lookup(ctx, normalized)
		if err != nil {
			return nil, err
		}
		result := Evaluate(promo, query.EventID, amount, now)
		resp := validationResponse(normalized, promo, result.Reason)
		if result.Accepted {
			resp.DiscountAmount = &result.DiscountAmount
			resp.FinalAmount = &result.FinalAmount
		}
		return resp, nil
	}

	promo, reason, err := s.evaluator.Check(ctx, normalized, query.EventID, now)
	if err != nil {
		return nil, err
	}
	return validationResponse(normalized, promo, reason), nil
}

func (s *service) get(ctx context.Context, id string) (*Promo, error) {
	promoID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrPromoNotFound
	}
	return s.repo.GetByID(ctx, promoID)
}

func validationResponse(code string, promo *Promo, reason Reason) *ValidationResponse {
	resp := &ValidationResponse{
		Valid:   reason == "",
		Reason:  reason,
		Code:    code,
		Message: "Promo code is valid",
	}
	if reason != "" {
		resp.Message = reason.Message()
	}
	if promo != nil && reason != ReasonInvalidCode {
		discount := promo.Discount
		resp.Description = promo.Description
		resp.DiscountType = promo.DiscountType
		resp.Discount = &discount
	}
	return resp
}

func validatePromo(p *Promo) error {
	var problems []string

	if len(p.Code) < 3 {
		problems = append(problems, "code must be at least 3 characters")
	}
	if !p.DiscountType.IsValid() {
		problems = append(problems, "discount_type must be percent or flat")
	}
	if !p.Discount.IsPositive() {
		problems = append(problems, "discount must be greater than zero")
	}
	if p.DiscountType == DiscountTypePercent && p.Discount.GreaterThan(hundred) {
		problems = append(problems, "percent discount cannot exceed 100")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		problems = append(problems, "start_date and end_date are required")
	} else if !p.EndDate.After(p.StartDate) {
		problems = append(problems, "end_date must be after start_date")
	}
	if !p.Scope.IsValid() {
		problems = append(problems, "scope must be all or specific")
	}
	if p.Scope == ScopeSpecific && len(p.ApplicableEvents) == 0 {
		problems = append(problems, "specific scope requires at least one applicable event")
	}
	if p.MinPurchaseAmount.IsNegative() {
		problems = append(problems, "min_purchase_amount cannot be negative")
	}
	if p.MaxDiscountAmount.Valid && !p.MaxDiscountAmount.Decimal.IsPositive() {
		problems = append(problems, "max_discount_amount must be greater than zero")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPromo, strings.Join(problems, "; "))
	}
	return nil
}
