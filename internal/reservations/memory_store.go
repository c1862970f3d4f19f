package reservations

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type boothKey struct {
	eventID string
	boothID int
}

// MemoryStore keeps reservations in process memory with the same
// one-active-row-per-booth rule as the Postgres index. Used with
// STORE_DRIVER=memory and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   map[uuid.UUID]*Reservation
	active map[boothKey]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:   make(map[uuid.UUID]*Reservation),
		active: make(map[boothKey]uuid.UUID),
	}
}

func (m *MemoryStore) TryCreateHold(_ context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := boothKey{r.EventID, r.BoothID}
	if r.Status.IsActive() {
		if _, taken := m.active[key]; taken {
			return ErrConflict
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}

	stored := cloneReservation(r)
	m.rows[r.ID] = stored
	if r.Status.IsActive() {
		m.active[key] = r.ID
	}
	return nil
}

func (m *MemoryStore) Transition(_ context.Context, id uuid.UUID, from, to Status, at time.Time) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	if row.Status != from {
		return nil, ErrStaleState
	}

	key := boothKey{row.EventID, row.BoothID}
	if !from.IsActive() && to.IsActive() {
		if _, taken := m.active[key]; taken {
			return nil, ErrConflict
		}
	}

	row.Status = to
	row.StatusChangedAt = at
	row.UpdatedAt = at
	if from == StatusHeld {
		row.HoldExpiresAt = nil
	}
	switch to {
	case StatusConfirmed:
		row.ConfirmedAt = timePtr(at)
	case StatusPaid:
		row.PaidAt = timePtr(at)
		if row.ConfirmedAt == nil {
			row.ConfirmedAt = timePtr(at)
		}
	}

	switch {
	case from.IsActive() && !to.IsActive():
		delete(m.active, key)
	case !from.IsActive() && to.IsActive():
		m.active[key] = id
	}
	return cloneReservation(row), nil
}

func (m *MemoryStore) FindActive(_ context.Context, eventID string, boothID int) (*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.active[boothKey{eventID, boothID}]
	if !ok {
		return nil, nil
	}
	return cloneReservation(m.rows[id]), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return cloneReservation(row), nil
}

func (m *MemoryStore) ListExpiredHolds(_ context.Context, now time.Time, limit int) ([]Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Reservation
	for _, id := range m.active {
		row := m.rows[id]
		if row.HoldLapsed(now) {
			out = append(out, *cloneReservation(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoldExpiresAt.Before(*out[j].HoldExpiresAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListActiveByEvent(_ context.Context, eventID string) ([]Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Reservation
	for key, id := range m.active {
		if key.eventID == eventID {
			out = append(out, *cloneReservation(m.rows[id]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoothID < out[j].BoothID })
	return out, nil
}

func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]Reservation, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	var matched []Reservation
	for _, row := range m.rows {
		if filter.EventID != "" && row.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.Category != "" && row.Category != filter.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(row.VendorName), q) &&
			!strings.Contains(strings.ToLower(row.Contact.PersonName), q) &&
			!strings.Contains(strings.ToLower(row.Contact.Email), q) {
			continue
		}
		matched = append(matched, *cloneReservation(row))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))

	start := filter.offset()
	if start >= len(matched) {
		return []Reservation{}, total, nil
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

func (m *MemoryStore) CountByStatus(_ context.Context, eventID string) (*StatusCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := newStatusCounts(eventID)
	for _, row := range m.rows {
		if eventID != "" && row.EventID != eventID {
			continue
		}
		counts.ByStatus[row.Status]++
		counts.Total++
	}
	return counts, nil
}

func cloneReservation(r *Reservation) *Reservation {
	out := *r
	if r.HoldExpiresAt != nil {
		out.HoldExpiresAt = timePtr(*r.HoldExpiresAt)
	}
	if r.ConfirmedAt != nil {
		out.ConfirmedAt = timePtr(*r.ConfirmedAt)
	}
	if r.PaidAt != nil {
		out.PaidAt = timePtr(*r.PaidAt)
	}
	return &out
}

func timePtr(t time.Time) *time.Time {
	return &t
}

var _ Store = (*MemoryStore)(nil)
