package reservations

import (
	"context"
	"time"

	"boothreserve/pkg/logger"
)

// Notifier is told about every committed reservation write
type Notifier interface {
	Notify(ctx context.Context, r *Reservation) error
}

// AvailabilityInvalidator drops cached availability for an event
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, eventID string) error
}

const commitHookTimeout = 5 * time.Second

// CommitHooks runs the best-effort work that follows a committed write.
// Failures are logged and never reach the caller. A nil *CommitHooks is a no-op.
type CommitHooks struct {
	notifier    Notifier
	invalidator AvailabilityInvalidator
	log         *logger.Logger
}

func NewCommitHooks(notifier Notifier, invalidator AvailabilityInvalidator) *CommitHooks {
	return &CommitHooks{
		notifier:    notifier,
		invalidator: invalidator,
		log:         logger.GetDefault().WithComponent("reservations"),
	}
}

func (h *CommitHooks) afterCommit(ctx context.Context, r *Reservation) {
	if h == nil || r == nil {
		return
	}

	// the write is already committed; a cancelled request must not skip this
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitHookTimeout)
	defer cancel()

	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(ctx, r.EventID); err != nil {
			h.log.WithError(err).WithFields(map[string]interface{}{
				"event_id": r.EventID,
			}).WarnContext(ctx, "Availability cache invalidation failed")
		}
	}
	if h.notifier != nil {
		if err := h.notifier.Notify(ctx, r); err != nil {
			h.log.LogNotificationFailed(ctx, r.ID.String(), err)
		}
	}
}
