package reservations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"
)

// SweeperConfig contains configuration for the expiry sweeper
type SweeperConfig struct {
	// Interval between scheduled sweeps
	Interval time.Duration
	// BatchSize is the number of lapsed holds loaded per page
	BatchSize int
}

// DefaultSweeperConfig returns default configuration
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Interval:  15 * time.Minute,
		BatchSize: 100,
	}
}

// SweepResult reports what one sweep did
type SweepResult struct {
	Released int           `json:"released"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}

// Lease lets one replica own the scheduled sweep
type Lease interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Sweeper moves holds whose deadline has passed to expired
type Sweeper struct {
	store  Store
	hooks  *CommitHooks
	clock  clock.Clock
	config SweeperConfig
	lease  Lease
	log    *logger.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewSweeper(store Store, hooks *CommitHooks, clk clock.Clock, config SweeperConfig) *Sweeper {
	defaults := DefaultSweeperConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	return &Sweeper{
		store:  store,
		hooks:  hooks,
		clock:  clk,
		config: config,
		log:    logger.GetDefault().WithComponent("sweeper"),
	}
}

// SetLease makes scheduled sweeps run only while the lease is held.
// On-demand and per-booth sweeps never take it.
func (s *Sweeper) SetLease(lease Lease) {
	s.lease = lease
}

// RunExpirySweep expires every lapsed hold, one page at a time
func (s *Sweeper) RunExpirySweep(ctx context.Context) (SweepResult, error) {
	started := time.Now()
	now := s.clock.Now()
	var result SweepResult

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.store.ListExpiredHolds(ctx, now, s.config.BatchSize)
		if err != nil {
			return result, fmt.Errorf("load lapsed holds: %w", err)
		}

		for i := range batch {
			released, err := s.expire(ctx, &batch[i], now)
			if err != nil {
				return result, err
			}
			if released {
				result.Released++
			} else {
				result.Skipped++
			}
		}

		if len(batch) < s.config.BatchSize {
			break
		}
	}

	result.Duration = time.Since(started)
	s.log.LogSweepCompleted(ctx, result.Released, result.Skipped, result.Duration)
	return result, nil
}

// SweepBooth expires the active hold on one booth if its deadline has passed
func (s *Sweeper) SweepBooth(ctx context.Context, eventID string, boothID int) (bool, error) {
	active, err := s.store.FindActive(ctx, eventID, boothID)
	if err != nil {
		return false, err
	}

	now := s.clock.Now()
	if active == nil || !active.HoldLapsed(now) {
		return false, nil
	}
	return s.expire(ctx, active, now)
}

// expire reports false without error when someone else moved the row first
func (s *Sweeper) expire(ctx context.Context, r *Reservation, now time.Time) (bool, error) {
	updated, err := s.store.Transition(ctx, r.ID, StatusHeld, StatusExpired, now)
	if errors.Is(err, ErrStaleState) || errors.Is(err, ErrReservationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("expire reservation %s: %w", r.ID, err)
	}

	s.log.LogReservationTransition(ctx, r.ID.String(), StatusHeld.String(), StatusExpired.String())
	s.hooks.afterCommit(ctx, updated)
	return true, nil
}

// Start runs a sweep now and then every interval until Stop or ctx is done
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("expiry sweeper already running")
	}
	s.running = true
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.mu.Unlock()

	s.log.Info("Starting expiry sweeper", "interval", s.config.Interval.String(), "batch_size", s.config.BatchSize)

	s.wg.Add(1)
	go s.loop(ctx, stopCh)

	return nil
}

// Stop stops the sweeper and waits for an in-flight sweep to finish
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.log.Info("Stopping expiry sweeper")
	s.wg.Wait()
	s.log.Info("Expiry sweeper stopped")
}

// Running reports whether the scheduled loop is active
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) loop(ctx context.Context, stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.scheduledSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.scheduledSweep(ctx)
		}
	}
}

func (s *Sweeper) scheduledSweep(ctx context.Context) {
	if s.lease != nil {
		acquired, err := s.lease.Acquire(ctx)
		if err != nil {
			s.log.WithError(err).WarnContext(ctx, "Sweeper lease unavailable")
			return
		}
		if !acquired {
			s.log.DebugContext(ctx, "Sweeper lease held by another replica")
			return
		}
		defer func() {
			if err := s.lease.Release(context.WithoutCancel(ctx)); err != nil {
				s.log.WithError(err).WarnContext(ctx, "Sweeper lease release failed")
			}
		}()
	}

	if _, err := s.RunExpirySweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.WithError(err).ErrorContext(ctx, "Expiry sweep failed")
	}
}
