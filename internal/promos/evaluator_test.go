package promos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func save20() *Promo {
	return &Promo{
		Code:              "SAVE20",
		DiscountType:      DiscountTypePercent,
		Discount:          dec("20"),
		StartDate:         now.Add(-24 * time.Hour),
		EndDate:           now.Add(30 * 24 * time.Hour),
		IsActive:          true,
		Scope:             ScopeAll,
		MinPurchaseAmount: decimal.Zero,
	}
}

func TestEvaluate_PercentDiscount(t *testing.T) {
	result := Evaluate(save20(), "evt-1", dec("350"), now)

	require.True(t, result.Accepted)
	assert.Equal(t, "SAVE20", result.Code)
	assert.True(t, dec("70").Equal(result.DiscountAmount), "discount %s", result.DiscountAmount)
	assert.True(t, dec("280.00").Equal(result.FinalAmount), "final %s", result.FinalAmount)
	assert.Empty(t, result.Reason)
}

func TestEvaluate_PercentRoundsToCents(t *testing.T) {
	p := save20()
	p.Discount = dec("15")

	result := Evaluate(p, "", dec("333.33"), now)

	require.True(t, result.Accepted)
	assert.Equal(t, "50", result.DiscountAmount.String())
	assert.Equal(t, "283.33", result.FinalAmount.String())
}

func TestEvaluate_PercentCappedByMax(t *testing.T) {
	p := save20()
	p.MaxDiscountAmount = decimal.NewNullDecimal(dec("25"))

	result := Evaluate(p, "", dec("350"), now)

	require.True(t, result.Accepted)
	assert.True(t, dec("25").Equal(result.DiscountAmount))
	assert.True(t, dec("325").Equal(result.FinalAmount))
}

func TestEvaluate_FlatDiscountNeverExceedsAmount(t *testing.T) {
	p := save20()
	p.Code = "FLAT50"
	p.DiscountType = DiscountTypeFlat
	p.Discount = dec("50")

	result := Evaluate(p, "", dec("30"), now)

	require.True(t, result.Accepted)
	assert.True(t, dec("30").Equal(result.DiscountAmount))
	assert.True(t, result.FinalAmount.IsZero())
}

func TestEvaluate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		promo   func() *Promo
		eventID string
		amount  string
		want    Reason
	}{
		{
			name:   "unknown code",
			promo:  func() *Promo { return nil },
			amount: "350",
			want:   ReasonInvalidCode,
		},
		{
			name: "inactive",
			promo: func() *Promo {
				p := save20()
				p.IsActive = false
				return p
			},
			amount: "350",
			want:   ReasonInactive,
		},
		{
			name: "not started",
			promo: func() *Promo {
				p := save20()
				p.StartDate = now.Add(time.Hour)
				return p
			},
			amount: "350",
			want:   ReasonNotStarted,
		},
		{
			name: "expired",
			promo: func() *Promo {
				p := save20()
				p.EndDate = now.Add(-time.Minute)
				return p
			},
			amount: "350",
			want:   ReasonExpired,
		},
		{
			name: "scoped to another event",
			promo: func() *Promo {
				p := save20()
				p.Scope = ScopeSpecific
				p.ApplicableEvents = []string{"evt-9"}
				return p
			},
			eventID: "evt-1",
			amount:  "350",
			want:    ReasonNotApplicableToEvent,
		},
		{
			name: "below minimum",
			promo: func() *Promo {
				p := save20()
				p.MinPurchaseAmount = dec("400")
				return p
			},
			amount: "350",
			want:   ReasonBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.promo(), tt.eventID, dec(tt.amount), now)

			assert.False(t, result.Accepted)
			assert.Equal(t, tt.want, result.Reason)
			assert.True(t, result.DiscountAmount.IsZero())
			assert.True(t, dec(tt.amount).Equal(result.FinalAmount))
			assert.NotEmpty(t, result.Reason.Message())
		})
	}
}

func TestEvaluate_WindowBoundsAreInclusive(t *testing.T) {
	p := save20()
	p.StartDate = now
	p.EndDate = now

	assert.True(t, Evaluate(p, "", dec("100"), now).Accepted)
}

func TestEvaluate_HasNoSideEffects(t *testing.T) {
	p := save20()
	before := *p

	Evaluate(p, "evt-1", dec("350"), now)
	Evaluate(p, "evt-1", dec("350"), now)

	assert.Equal(t, before, *p)
}

func TestCheck_SkipsScopeWithoutEvent(t *testing.T) {
	p := save20()
	p.Scope = ScopeSpecific
	p.ApplicableEvents = []string{"evt-9"}

	assert.Empty(t, Check(p, "", now))
	assert.Equal(t, ReasonNotApplicableToEvent, Check(p, "evt-1", now))
	assert.Empty(t, Check(p, "evt-9", now))
}

type stubFinder struct {
	promo *Promo
	err   error
	codes []string
}

func (f *stubFinder) FindByCode(_ context.Context, code string) (*Promo, error) {
	f.codes = append(f.codes, code)
	return f.promo, f.err
}

func TestEvaluator_NormalizesCodeBeforeLookup(t *testing.T) {
	finder := &stubFinder{promo: save20()}
	ev := NewEvaluator(finder)

	result, err := ev.Evaluate(context.Background(), "  save20 ", "", dec("350"), now)

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, []string{"SAVE20"}, finder.codes)
}

func TestEvaluator_NotFoundIsARejection(t *testing.T) {
	ev := NewEvaluator(&stubFinder{err: ErrPromoNotFound})

	result, err := ev.Evaluate(context.Background(), "NOPE", "", dec("350"), now)

	require.NoError(t, err)
	assert.Equal(t, ReasonInvalidCode, result.Reason)
}

func TestEvaluator_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	ev := NewEvaluator(&stubFinder{err: boom})

	_, err := ev.Evaluate(context.Background(), "SAVE20", "", dec("350"), now)

	assert.ErrorIs(t, err, boom)
}
