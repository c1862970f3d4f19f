package reservations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusHeld, StatusUnderReview, true},
		{StatusHeld, StatusApproved, true},
		{StatusHeld, StatusConfirmed, true},
		{StatusHeld, StatusPaid, true},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusConfirmed, true},
		{StatusUnderReview, StatusPaid, false},
		{StatusApproved, StatusConfirmed, true},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusUnderReview, false},
		{StatusConfirmed, StatusPaid, true},
		{StatusConfirmed, StatusHeld, false},
		{StatusPaid, StatusConfirmed, false},

		{StatusHeld, StatusRejected, true},
		{StatusPaid, StatusRejected, true},
		{StatusExpired, StatusRejected, false},

		{StatusPaid, StatusCancelled, true},
		{StatusRejected, StatusCancelled, true},
		{StatusExpired, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, false},

		{StatusHeld, StatusExpired, false},
		{StatusExpired, StatusHeld, false},
		{StatusCancelled, StatusHeld, false},
		{Status("bogus"), StatusPaid, false},
		{StatusHeld, Status("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatus_ActiveSetMatchesIndex(t *testing.T) {
	for _, s := range ActiveStatuses {
		assert.True(t, s.IsActive(), s)
		assert.False(t, s.IsTerminal(), s)
	}
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusExpired} {
		assert.False(t, s.IsActive(), s)
		assert.True(t, s.IsTerminal(), s)
	}
	assert.Equal(t, []string{"held", "under_review", "approved", "confirmed", "paid"}, activeStatusStrings())
}
