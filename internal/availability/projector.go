package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"boothreserve/internal/catalog"
	"boothreserve/internal/reservations"
	"boothreserve/internal/shared/constants"
	"boothreserve/pkg/cache"
	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"

	"github.com/google/uuid"
)

// ReservationReader is the slice of the reservation store the projector reads
type ReservationReader interface {
	ListActiveByEvent(ctx context.Context, eventID string) ([]reservations.Reservation, error)
}

// FloorPlan lists the booths to project
type FloorPlan interface {
	All() []catalog.Booth
}

// Cache is the subset of cache.Service the projector uses
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Projector computes per-booth availability for an event from active reservations
type Projector struct {
	reader ReservationReader
	booths FloorPlan
	cache  Cache
	clk    clock.Clock
	ttl    time.Duration
	log    *logger.Logger
}

// NewProjector creates a projector. A nil cache reads the store on every call.
func NewProjector(reader ReservationReader, booths FloorPlan, c Cache, clk clock.Clock, ttl time.Duration) *Projector {
	if ttl <= 0 {
		ttl = constants.TTL_AVAILABILITY
	}
	return &Projector{
		reader: reader,
		booths: booths,
		cache:  c,
		clk:    clk,
		ttl:    ttl,
		log:    logger.GetDefault().WithComponent("availability"),
	}
}

// cachedView is a projection stamped with the generation that was current
// before its reservations were read
type cachedView struct {
	Generation string              `json:"generation"`
	Booths     []BoothAvailability `json:"booths"`
}

// ProjectAvailability returns one entry per catalog booth, ordered by booth id
func (p *Projector) ProjectAvailability(ctx context.Context, eventID string) ([]BoothAvailability, error) {
	if eventID == "" {
		return nil, ErrEventRequired
	}
	key := constants.BuildAvailabilityKey(eventID)

	// read before the store so a write committed during this call bumps it
	generation, cacheable := p.generation(ctx, eventID)
	if cacheable {
		var cached cachedView
		err := p.cache.Get(ctx, key, &cached)
		if err == nil && cached.Generation == generation {
			return cached.Booths, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			p.log.WarnContext(ctx, "Availability cache read failed", slog.String("event_id", eventID), slog.Any("error", err))
		}
	}

	active, err := p.reader.ListActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("project availability: %w", err)
	}

	now := p.clk.Now()
	result, earliest := project(p.booths.All(), active, now)

	if cacheable {
		ttl := p.ttl
		if earliest != nil {
			if untilDeadline := earliest.Sub(now); untilDeadline < ttl {
				ttl = untilDeadline
			}
		}
		// a zero ttl would be stored without expiry
		if ttl > 0 {
			view := cachedView{Generation: generation, Booths: result}
			if err := p.cache.Set(ctx, key, view, ttl); err != nil {
				p.log.WarnContext(ctx, "Availability cache write failed", slog.String("event_id", eventID), slog.Any("error", err))
			}
		}
	}

	return result, nil
}

// generation returns the event's current cache generation. The second result
// is false when nothing may be cached, either because there is no cache or
// because the generation could not be read.
func (p *Projector) generation(ctx context.Context, eventID string) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	var generation string
	err := p.cache.Get(ctx, constants.BuildAvailabilityGenerationKey(eventID), &generation)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		p.log.WarnContext(ctx, "Availability generation read failed", slog.String("event_id", eventID), slog.Any("error", err))
		return "", false
	}
	return generation, true
}

// Invalidate moves the event to a new generation, which retires every view
// computed before the call, including ones still being written.
func (p *Projector) Invalidate(ctx context.Context, eventID string) error {
	if p.cache == nil {
		return nil
	}
	err := p.cache.Set(ctx, constants.BuildAvailabilityGenerationKey(eventID), uuid.NewString(), constants.TTL_AVAILABILITY_GENERATION)
	if err != nil {
		return fmt.Errorf("invalidate availability: %w", err)
	}
	if err := p.cache.Delete(ctx, constants.BuildAvailabilityKey(eventID)); err != nil {
		return fmt.Errorf("invalidate availability: %w", err)
	}
	return nil
}

// project maps active reservations onto the floor plan. It also returns the
// earliest live hold deadline, which bounds how long the result stays true.
func project(booths []catalog.Booth, active []reservations.Reservation, now time.Time) ([]BoothAvailability, *time.Time) {
	byBooth := make(map[int]*reservations.Reservation, len(active))
	for i := range active {
		byBooth[active[i].BoothID] = &active[i]
	}

	var earliest *time.Time
	out := make([]BoothAvailability, 0, len(booths))
	for _, b := range booths {
		entry := BoothAvailability{
			BoothID:  b.ID,
			Category: b.Category,
			Price:    b.Price,
			Position: b.Position,
			Status:   BoothAvailable,
		}

		if r, ok := byBooth[b.ID]; ok {
			switch r.Status {
			case reservations.StatusHeld:
				if !r.HoldLapsed(now) {
					entry.Status = BoothHeld
					entry.HeldUntil = r.HoldExpiresAt
					if r.HoldExpiresAt != nil && (earliest == nil || r.HoldExpiresAt.Before(*earliest)) {
						earliest = r.HoldExpiresAt
					}
				}
			case reservations.StatusUnderReview, reservations.StatusApproved:
				entry.Status = BoothBooked
			case reservations.StatusConfirmed, reservations.StatusPaid:
				entry.Status = BoothConfirmed
			}
		}

		out = append(out, entry)
	}

	return out, earliest
}

var _ reservations.AvailabilityInvalidator = (*Projector)(nil)
