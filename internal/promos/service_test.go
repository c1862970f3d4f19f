package promos

import (
	"context"
	"testing"
	"time"

	"boothreserve/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(seed ...Promo) (Service, *MemoryRepository) {
	repo := NewMemoryRepository(seed...)
	return NewService(repo, clock.NewFixed(now)), repo
}

func validCreateRequest() CreatePromoRequest {
	return CreatePromoRequest{
		Code:         " save20 ",
		Description:  "20% off any booth",
		DiscountType: DiscountTypePercent,
		Discount:     dec("20"),
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(90 * 24 * time.Hour),
	}
}

func TestService_CreatePromo(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.CreatePromo(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "SAVE20", created.Code)
	assert.True(t, created.IsActive)
	assert.Equal(t, ScopeAll, created.Scope)
	assert.Empty(t, created.ApplicableEvents)

	stored, err := repo.FindByCode(context.Background(), "save20")
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID.String())
}

func TestService_CreatePromo_DuplicateCode(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreatePromo(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.CreatePromo(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestService_CreatePromo_RejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePromoRequest)
	}{
		{"percent over 100", func(r *CreatePromoRequest) { r.Discount = dec("120") }},
		{"zero discount", func(r *CreatePromoRequest) { r.Discount = decimal.Zero }},
		{"end before start", func(r *CreatePromoRequest) { r.EndDate = r.StartDate.Add(-time.Hour) }},
		{"missing dates", func(r *CreatePromoRequest) { r.StartDate = time.Time{} }},
		{"specific scope without events", func(r *CreatePromoRequest) { r.Scope = ScopeSpecific }},
		{"negative minimum", func(r *CreatePromoRequest) {
			m := dec("-1")
			r.MinPurchaseAmount = &m
		}},
		{"zero cap", func(r *CreatePromoRequest) {
			m := decimal.Zero
			r.MaxDiscountAmount = &m
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreatePromo(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidPromo)
		})
	}
}

func TestService_UpdatePromo(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreatePromo(context.Background(), validCreateRequest())
	require.NoError(t, err)

	inactive := false
	maxCap := dec("40")
	updated, err := svc.UpdatePromo(context.Background(), created.ID, UpdatePromoRequest{
		IsActive:          &inactive,
		MaxDiscountAmount: &maxCap,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.MaxDiscountAmount)
	assert.True(t, maxCap.Equal(*updated.MaxDiscountAmount))

	cleared, err := svc.UpdatePromo(context.Background(), created.ID, UpdatePromoRequest{ClearMaxDiscount: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.MaxDiscountAmount)
}

func TestService_UpdatePromo_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdatePromo(context.Background(), "not-a-uuid", UpdatePromoRequest{})
	assert.ErrorIs(t, err, ErrPromoNotFound)

	_, err = svc.UpdatePromo(context.Background(), "6f1c1f4e-3e0f-4b43-9d53-4e3a4b7d2f10", UpdatePromoRequest{})
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestService_DeletePromo(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreatePromo(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePromo(context.Background(), created.ID))

	_, err = svc.GetPromo(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.ErrorIs(t, svc.DeletePromo(context.Background(), created.ID), ErrPromoNotFound)
}

func TestService_ListPromos_FiltersByActive(t *testing.T) {
	inactive := *save20()
	inactive.Code = "OLD10"
	inactive.IsActive = false
	svc, _ := newTestService(*save20(), inactive)

	active := true
	list, err := svc.ListPromos(context.Background(), ListPromosQuery{IsActive: &active})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SAVE20", list[0].Code)
}

func TestService_ValidateCode(t *testing.T) {
	scoped := *save20()
	scoped.Code = "VIPONLY"
	scoped.Scope = ScopeSpecific
	scoped.ApplicableEvents = []string{"evt-vip"}

	minimum := *save20()
	minimum.Code = "BIGSPEND"
	minimum.MinPurchaseAmount = dec("500")

	svc, _ := newTestService(*save20(), scoped, minimum)
	ctx := context.Background()

	t.Run("valid without amount", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "save20", ValidatePromoQuery{})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Nil(t, resp.FinalAmount)
		require.NotNil(t, resp.Discount)
		assert.True(t, dec("20").Equal(*resp.Discount))
	})

	t.Run("valid with amount", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "SAVE20", ValidatePromoQuery{Amount: "350"})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		require.NotNil(t, resp.FinalAmount)
		assert.True(t, dec("280").Equal(*resp.FinalAmount))
	})

	t.Run("unknown", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "NOPE", ValidatePromoQuery{})
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, ReasonInvalidCode, resp.Reason)
		assert.Nil(t, resp.Discount)
	})

	t.Run("minimum ignored without amount", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "BIGSPEND", ValidatePromoQuery{})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
	})

	t.Run("minimum enforced with amount", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "BIGSPEND", ValidatePromoQuery{Amount: "350"})
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, ReasonBelowMinimum, resp.Reason)
	})

	t.Run("scope checked only for a given event", func(t *testing.T) {
		resp, err := svc.ValidateCode(ctx, "VIPONLY", ValidatePromoQuery{})
		require.NoError(t, err)
		assert.True(t, resp.Valid)

		resp, err = svc.ValidateCode(ctx, "VIPONLY", ValidatePromoQuery{EventID: "evt-1"})
		require.NoError(t, err)
		assert.Equal(t, ReasonNotApplicableToEvent, resp.Reason)
	})

	t.Run("bad amount", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, "SAVE20", ValidatePromoQuery{Amount: "-5"})
		assert.ErrorIs(t, err, ErrInvalidPromo)
	})
}
