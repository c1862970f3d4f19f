package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func heldRow(eventID string, boothID int, vendor string, deadline time.Time) *Reservation {
	return &Reservation{
		ID:              uuid.New(),
		EventID:         eventID,
		BoothID:         boothID,
		VendorRef:       vendor,
		VendorName:      vendor,
		Status:          StatusHeld,
		HoldExpiresAt:   timePtr(deadline),
		StatusChangedAt: t0,
		CreatedAt:       t0,
	}
}

func TestMemoryStore_OneActivePerBooth(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 17, "a", t0.Add(time.Hour))))
	assert.ErrorIs(t, store.TryCreateHold(ctx, heldRow("evt", 17, "b", t0.Add(time.Hour))), ErrConflict)

	// other event and other booth are independent
	assert.NoError(t, store.TryCreateHold(ctx, heldRow("evt-2", 17, "b", t0.Add(time.Hour))))
	assert.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 16, "b", t0.Add(time.Hour))))
}

func TestMemoryStore_ConcurrentHoldsHaveOneWinner(t *testing.T) {
	store := NewMemoryStore()
	const racers = 64

	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.TryCreateHold(context.Background(), heldRow("evt", 17, uuid.NewString(), t0.Add(time.Hour)))
		}(i)
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
}

func TestMemoryStore_TransitionIsCompareAndSwap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	row := heldRow("evt", 17, "a", t0.Add(time.Hour))
	require.NoError(t, store.TryCreateHold(ctx, row))

	updated, err := store.Transition(ctx, row.ID, StatusHeld, StatusConfirmed, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Nil(t, updated.HoldExpiresAt)
	require.NotNil(t, updated.ConfirmedAt)
	assert.Equal(t, t0.Add(time.Minute), updated.StatusChangedAt)

	_, err = store.Transition(ctx, row.ID, StatusHeld, StatusExpired, t0.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrStaleState)

	_, err = store.Transition(ctx, uuid.New(), StatusHeld, StatusExpired, t0)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestMemoryStore_ConcurrentTransitionsHaveOneWinner(t *testing.T) {
	store := NewMemoryStore()
	row := heldRow("evt", 17, "a", t0.Add(time.Hour))
	require.NoError(t, store.TryCreateHold(context.Background(), row))

	const racers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := StatusExpired
			if i%2 == 0 {
				to = StatusConfirmed
			}
			if _, err := store.Transition(context.Background(), row.ID, StatusHeld, to, t0); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestMemoryStore_LeavingActiveFreesBooth(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	row := heldRow("evt", 17, "a", t0.Add(time.Hour))
	require.NoError(t, store.TryCreateHold(ctx, row))

	_, err := store.Transition(ctx, row.ID, StatusHeld, StatusExpired, t0.Add(2*time.Hour))
	require.NoError(t, err)

	active, err := store.FindActive(ctx, "evt", 17)
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 17, "b", t0.Add(3*time.Hour))))
}

func TestMemoryStore_ListExpiredHolds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 1, "a", t0.Add(2*time.Hour))))
	require.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 2, "b", t0.Add(time.Hour))))
	require.NoError(t, store.TryCreateHold(ctx, heldRow("evt", 3, "c", t0.Add(5*time.Hour))))

	// booth 1's deadline is exactly now, so it is still live
	atDeadline, err := store.ListExpiredHolds(ctx, t0.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, atDeadline, 1)
	assert.Equal(t, 2, atDeadline[0].BoothID)

	lapsed, err := store.ListExpiredHolds(ctx, t0.Add(3*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, lapsed, 2)
	assert.Equal(t, 2, lapsed[0].BoothID)
	assert.Equal(t, 1, lapsed[1].BoothID)

	limited, err := store.ListExpiredHolds(ctx, t0.Add(3*time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	row := heldRow("evt", 17, "a", t0.Add(time.Hour))
	require.NoError(t, store.TryCreateHold(ctx, row))

	got, err := store.FindByID(ctx, row.ID)
	require.NoError(t, err)
	got.Status = StatusPaid
	*got.HoldExpiresAt = t0

	again, err := store.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusHeld, again.Status)
	assert.Equal(t, t0.Add(time.Hour), *again.HoldExpiresAt)
}

func TestMemoryStore_ListAndCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		row := heldRow("evt", i, "vendor", t0.Add(time.Hour))
		row.CreatedAt = t0.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.TryCreateHold(ctx, row))
	}
	other := heldRow("evt-2", 1, "Maple Crafts", t0.Add(time.Hour))
	require.NoError(t, store.TryCreateHold(ctx, other))

	page, total, err := store.List(ctx, ListFilter{EventID: "evt", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].BoothID)
	assert.Equal(t, 2, page[1].BoothID)

	found, total, err := store.List(ctx, ListFilter{Query: "maple", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, other.ID, found[0].ID)

	counts, err := store.CountByStatus(ctx, "evt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Total)
	assert.Equal(t, int64(5), counts.ByStatus[StatusHeld])
	assert.Equal(t, int64(0), counts.ByStatus[StatusPaid])
}
