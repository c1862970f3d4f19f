package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boothreserve/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveBoothIndex is the partial unique index that decides who wins a booth
const ActiveBoothIndex = "ux_reservations_active_booth"

// Store persists reservations. Implementations must enforce at most one
// active reservation per (event, booth) atomically.
type Store interface {
	// TryCreateHold inserts r. ErrConflict means another active reservation owns the booth.
	TryCreateHold(ctx context.Context, r *Reservation) error
	// Transition moves id from one status to another only if it is still in from.
	Transition(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) (*Reservation, error)
	// FindActive returns the active reservation for a booth, or nil when there is none.
	FindActive(ctx context.Context, eventID string, boothID int) (*Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]Reservation, error)
	ListActiveByEvent(ctx context.Context, eventID string) ([]Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error)
	CountByStatus(ctx context.Context, eventID string) (*StatusCounts, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Store {
	return &repository{db: db}
}

func (r *repository) TryCreateHold(ctx context.Context, res *Reservation) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		if database.IsUniqueViolation(err, ActiveBoothIndex) {
			return ErrConflict
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}

func (r *repository) Transition(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) (*Reservation, error) {
	updates := transitionUpdates(from, to, at)

	var updated []Reservation
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error, ActiveBoothIndex) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("transition reservation: %w", result.Error)
	}

	if result.RowsAffected == 0 || len(updated) == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStaleState
	}
	return &updated[0], nil
}

func transitionUpdates(from, to Status, at time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"status":            to,
		"status_changed_at": at,
		"updated_at":        at,
	}
	if from == StatusHeld {
		updates["hold_expires_at"] = nil
	}
	switch to {
	case StatusConfirmed:
		updates["confirmed_at"] = at
	case StatusPaid:
		updates["paid_at"] = at
		updates["confirmed_at"] = gorm.Expr("COALESCE(confirmed_at, ?)", at)
	}
	return updates
}

func (r *repository) FindActive(ctx context.Context, eventID string, boothID int) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND booth_id = ? AND status IN ?", eventID, boothID, activeStatusStrings()).
		Take(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active reservation: %w", err)
	}
	return &res, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}

func (r *repository) ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]Reservation, error) {
	var out []Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND hold_expires_at < ?", StatusHeld, now).
		Order("hold_expires_at ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list expired holds: %w", err)
	}
	return out, nil
}

func (r *repository) ListActiveByEvent(ctx context.Context, eventID string) ([]Reservation, error) {
	var out []Reservation
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status IN ?", eventID, activeStatusStrings()).
		Order("booth_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	return out, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&Reservation{})

	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(vendor_name) LIKE ? OR LOWER(contact_person_name) LIKE ? OR LOWER(contact_email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	var out []Reservation
	err := query.
		Order("created_at DESC").
		Offset(filter.offset()).
		Limit(filter.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	return out, total, nil
}

func (r *repository) CountByStatus(ctx context.Context, eventID string) (*StatusCounts, error) {
	var rows []struct {
		Status Status
		Count  int64
	}

	query := r.db.WithContext(ctx).Model(&Reservation{}).Select("status, COUNT(*) AS count")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count reservations by status: %w", err)
	}

	counts := newStatusCounts(eventID)
	for _, row := range rows {
		counts.ByStatus[row.Status] = row.Count
		counts.Total += row.Count
	}
	return counts, nil
}

func newStatusCounts(eventID string) *StatusCounts {
	counts := &StatusCounts{EventID: eventID, ByStatus: make(map[Status]int64)}
	for _, s := range []Status{
		StatusHeld, StatusUnderReview, StatusApproved, StatusConfirmed, StatusPaid,
		StatusRejected, StatusCancelled, StatusExpired,
	} {
		counts.ByStatus[s] = 0
	}
	return counts
}
