package promos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reason explains why a promo code was not accepted
type Reason string

const (
	ReasonInvalidCode          Reason = "INVALID_CODE"
	ReasonInactive             Reason = "INACTIVE"
	ReasonNotStarted           Reason = "NOT_STARTED"
	ReasonExpired              Reason = "EXPIRED"
	ReasonNotApplicableToEvent Reason = "NOT_APPLICABLE_TO_EVENT"
	ReasonBelowMinimum         Reason = "BELOW_MINIMUM"
)

// Message returns the human readable text for a rejection reason
func (r Reason) Message() string {
	switch r {
	case ReasonInvalidCode:
		return "Invalid promo code"
	case ReasonInactive:
		return "Promo code is inactive"
	case ReasonNotStarted:
		return "Promo code is not yet active"
	case ReasonExpired:
		return "Promo code has expired"
	case ReasonNotApplicableToEvent:
		return "Promo code does not apply to this event"
	case ReasonBelowMinimum:
		return "Purchase amount is below the promo minimum"
	default:
		return "Promo code is not valid"
	}
}

var hundred = decimal.NewFromInt(100)

// Result is the outcome of evaluating a promo code against a price
type Result struct {
	Accepted       bool            `json:"accepted"`
	Code           string          `json:"code,omitempty"`
	DiscountType   DiscountType    `json:"discount_type,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Reason         Reason          `json:"reason,omitempty"`
}

// NormalizeCode upper-cases and trims a code the way it is stored
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate applies promo p to amount. A nil p means the code does not exist.
// It has no side effects.
func Evaluate(p *Promo, eventID string, amount decimal.Decimal, now time.Time) Result {
	if reason := eligibility(p, eventID, now, true); reason != "" {
		return rejected(p, amount, reason)
	}
	if amount.LessThan(p.MinPurchaseAmount) {
		return rejected(p, amount, ReasonBelowMinimum)
	}

	discount := DiscountFor(p, amount)
	return Result{
		Accepted:       true,
		Code:           p.Code,
		DiscountType:   p.DiscountType,
		DiscountAmount: discount,
		FinalAmount:    amount.Sub(discount),
	}
}

// Check runs the activity and window rules, and the event scope rule when eventID is set.
// It is what a "does this code work" lookup needs before a price is known.
func Check(p *Promo, eventID string, now time.Time) Reason {
	return eligibility(p, eventID, now, eventID != "")
}

func eligibility(p *Promo, eventID string, now time.Time, checkScope bool) Reason {
	switch {
	case p == nil:
		return ReasonInvalidCode
	case !p.IsActive:
		return ReasonInactive
	case now.Before(p.StartDate):
		return ReasonNotStarted
	case now.After(p.EndDate):
		return ReasonExpired
	case checkScope && !p.AppliesTo(eventID):
		return ReasonNotApplicableToEvent
	}
	return ""
}

// DiscountFor computes the discount for amount, clamped to [0, amount]
func DiscountFor(p *Promo, amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountTypePercent:
		discount = amount.Mul(p.Discount).Div(hundred).Round(2)
		if p.MaxDiscountAmount.Valid && discount.GreaterThan(p.MaxDiscountAmount.Decimal) {
			discount = p.MaxDiscountAmount.Decimal
		}
	case DiscountTypeFlat:
		discount = p.Discount
	}

	if discount.GreaterThan(amount) {
		discount = amount
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount
}

func rejected(p *Promo, amount decimal.Decimal, reason Reason) Result {
	r := Result{
		Accepted:       false,
		DiscountAmount: decimal.Zero,
		FinalAmount:    amount,
		Reason:         reason,
	}
	if p != nil {
		r.Code = p.Code
		r.DiscountType = p.DiscountType
	}
	return r
}

// Finder looks a promo up by its normalized code
type Finder interface {
	FindByCode(ctx context.Context, code string) (*Promo, error)
}

// Evaluator resolves codes through a Finder and evaluates them
type Evaluator struct {
	finder Finder
}

func NewEvaluator(finder Finder) *Evaluator {
	return &Evaluator{finder: finder}
}

// Evaluate looks code up and evaluates it against amount
func (e *Evaluator) Evaluate(ctx context.Context, code, eventID string, amount decimal.Decimal, now time.Time) (Result, error) {
	promo, err := e.lookup(ctx, code)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(promo, eventID, amount, now), nil
}

// Check looks code up and runs the rules that do not need a price
func (e *Evaluator) Check(ctx context.Context, code, eventID string, now time.Time) (*Promo, Reason, error) {
	promo, err := e.lookup(ctx, code)
	if err != nil {
		return nil, "", err
	}
	return promo, Check(promo, eventID, now), nil
}

func (e *Evaluator) lookup(ctx context.Context, code string) (*Promo, error) {
	promo, err := e.finder.FindByCode(ctx, NormalizeCode(code))
	if errors.Is(err, ErrPromoNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup promo code: %w", err)
	}
	return promo, nil
}
