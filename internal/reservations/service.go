package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boothreserve/internal/catalog"
	"boothreserve/internal/promos"
	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultHoldDuration = 48 * time.Hour
	defaultPageSize     = 20
	maxPageSize         = 100
)

// BoothCatalog is the read-only booth table
type BoothCatalog interface {
	Lookup(id int) (catalog.Booth, bool)
}

// PromoEvaluator prices a promo code against a catalog amount
type PromoEvaluator interface {
	Evaluate(ctx context.Context, code, eventID string, amount decimal.Decimal, now time.Time) (promos.Result, error)
}

type Service interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error)
	// TransitionReservation moves a reservation along the status graph. An empty
	// expectedFrom accepts whatever status the reservation currently has.
	TransitionReservation(ctx context.Context, id uuid.UUID, to, expectedFrom Status) (*Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListReservations(ctx context.Context, filter ListFilter) (*ReservationPage, error)
	Stats(ctx context.Context, eventID string) (*StatusCounts, error)
	RunSweep(ctx context.Context) (SweepResult, error)
}

type service struct {
	store        Store
	catalog      BoothCatalog
	promos       PromoEvaluator
	sweeper      *Sweeper
	hooks        *CommitHooks
	clock        clock.Clock
	holdDuration time.Duration
	validate     *validator.Validate
	log          *logger.Logger
}

func NewService(
	store Store,
	booths BoothCatalog,
	evaluator PromoEvaluator,
	sweeper *Sweeper,
	hooks *CommitHooks,
	clk clock.Clock,
	holdDuration time.Duration,
) Service {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	return &service{
		store:        store,
		catalog:      booths,
		promos:       evaluator,
		sweeper:      sweeper,
		hooks:        hooks,
		clock:        clk,
		holdDuration: holdDuration,
		validate:     newValidator(),
		log:          logger.GetDefault().WithComponent("reservations"),
	}
}

func (s *service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error) {
	if err := validateCreate(s.validate, &req); err != nil {
		return nil, err
	}

	booth, ok := s.catalog.Lookup(req.BoothID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBoothNotFound, req.BoothID)
	}

	category, err := catalog.ParseVendorCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if category != booth.Category {
		return nil, fmt.Errorf("%w: booth %d is %s, vendor is %s", ErrCategoryMismatch, booth.ID, booth.Category, category)
	}

	// clear a lapsed hold on this booth so it does not block the insert
	if _, err := s.sweeper.SweepBooth(ctx, req.EventID, req.BoothID); err != nil {
		return nil, fmt.Errorf("release lapsed hold: %w", err)
	}

	now := s.clock.Now()
	pricing, err := s.price(ctx, req, booth, now)
	if err != nil {
		return nil, err
	}

	holdExpiresAt := now.Add(s.holdDuration)
	reservation := &Reservation{
		ID:         uuid.New(),
		EventID:    req.EventID,
		BoothID:    booth.ID,
		Category:   booth.Category,
		VendorRef:  req.VendorRef,
		VendorName: strings.TrimSpace(req.VendorName),
		Contact: Contact{
			PersonName: strings.TrimSpace(req.PersonName),
			Email:      strings.TrimSpace(req.Email),
			Phone:      strings.TrimSpace(req.Phone),
			IsLocal:    *req.IsLocal,
		},
		Socials: Socials{
			Instagram: strings.TrimSpace(req.Instagram),
			Facebook:  strings.TrimSpace(req.Facebook),
		},
		Details:         detailsFor(category, req),
		Notes:           strings.TrimSpace(req.Notes),
		TermsAcceptedAt: now,
		Status:          StatusHeld,
		HoldExpiresAt:   &holdExpiresAt,
		Pricing:         pricing,
		StatusChangedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.TryCreateHold(ctx, reservation); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.LogBoothUnavailable(ctx, req.EventID, req.BoothID, req.VendorRef)
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.LogReservationHeld(ctx, reservation.ID.String(), reservation.EventID, reservation.BoothID, reservation.VendorRef, holdExpiresAt)
	s.hooks.afterCommit(ctx, reservation)
	return reservation, nil
}

func (s *service) price(ctx context.Context, req CreateReservationRequest, booth catalog.Booth, now time.Time) (Pricing, error) {
	pricing := Pricing{
		BasePrice:     booth.Price,
		PromoDiscount: decimal.Zero,
		FinalAmount:   booth.Price,
	}

	code := promos.NormalizeCode(req.PromoCode)
	if code == "" {
		return pricing, nil
	}

	result, err := s.promos.Evaluate(ctx, code, req.EventID, booth.Price, now)
	if err != nil {
		return Pricing{}, fmt.Errorf("evaluate promo code: %w", err)
	}
	if !result.Accepted {
		return Pricing{}, &PromoRejectedError{Code: code, Reason: result.Reason}
	}

	pricing.PromoCode = code
	pricing.PromoDiscount = result.DiscountAmount
	pricing.PromoDiscountType = result.DiscountType
	pricing.FinalAmount = result.FinalAmount
	return pricing, nil
}

func detailsFor(category catalog.Category, req CreateReservationRequest) CategoryDetails {
	switch category {
	case catalog.CategoryFood:
		return CategoryDetails{FoodItems: strings.TrimSpace(req.FoodItems), NeedPower: req.NeedPower, Watts: wattsIf(req)}
	case catalog.CategoryClothing:
		return CategoryDetails{ClothingType: strings.TrimSpace(req.ClothingType)}
	case catalog.CategoryJewelry:
		return CategoryDetails{JewelryType: strings.TrimSpace(req.JewelryType)}
	case catalog.CategoryCraft:
		return CategoryDetails{CraftDetails: strings.TrimSpace(req.CraftDetails), NeedPower: req.NeedPower, Watts: wattsIf(req)}
	}
	return CategoryDetails{}
}

func wattsIf(req CreateReservationRequest) int {
	if !req.NeedPower {
		return 0
	}
	return req.Watts
}

func (s *service) TransitionReservation(ctx context.Context, id uuid.UUID, to, expectedFrom Status) (*Reservation, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := current.Status
	if expectedFrom != "" && expectedFrom != from {
		return nil, fmt.Errorf("%w: reservation is %s, expected %s", ErrStaleState, from, expectedFrom)
	}

	now := s.clock.Now()
	if current.HoldLapsed(now) {
		released, err := s.sweeper.expire(ctx, current, now)
		if err != nil {
			return nil, err
		}
		if !released {
			return nil, ErrStaleState
		}
		return nil, ErrHoldExpired
	}

	if !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	updated, err := s.store.Transition(ctx, id, from, to, now)
	if err != nil {
		return nil, err
	}

	s.log.LogReservationTransition(ctx, id.String(), from.String(), to.String())
	s.hooks.afterCommit(ctx, updated)
	return updated, nil
}

func (s *service) GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.store.FindByID(ctx, id)
}

func (s *service) ListReservations(ctx context.Context, filter ListFilter) (*ReservationPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "is not a reservation status"}}
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, &ValidationError{Fields: map[string]string{"category": "is not a booth category"}}
	}

	items, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReservationPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *service) Stats(ctx context.Context, eventID string) (*StatusCounts, error) {
	return s.store.CountByStatus(ctx, eventID)
}

func (s *service) RunSweep(ctx context.Context) (SweepResult, error) {
	return s.sweeper.RunExpirySweep(ctx)
}
