package reservations

type Status string

const (
	StatusHeld        Status = "held"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusConfirmed   Status = "confirmed"
	StatusPaid        Status = "paid"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
	StatusExpired     Status = "expired"
)

// ActiveStatuses are the statuses that occupy a booth
var ActiveStatuses = []Status{
	StatusHeld,
	StatusUnderReview,
	StatusApproved,
	StatusConfirmed,
	StatusPaid,
}

// IsValid checks if the reservation status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusUnderReview, StatusApproved, StatusConfirmed, StatusPaid,
		StatusRejected, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive reports whether a reservation in this status blocks the booth
func (s Status) IsActive() bool {
	switch s {
	case StatusHeld, StatusUnderReview, StatusApproved, StatusConfirmed, StatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusExpired
}

var forwardEdges = map[Status][]Status{
	StatusHeld:        {StatusUnderReview, StatusApproved, StatusConfirmed, StatusPaid},
	StatusUnderReview: {StatusApproved, StatusConfirmed},
	StatusApproved:    {StatusConfirmed, StatusPaid},
	StatusConfirmed:   {StatusPaid},
}

// CanTransition reports whether an operator may move a reservation from one status to another.
// Expiry is not an operator move and is reported as false.
func CanTransition(from, to Status) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	switch to {
	case StatusExpired:
		return false
	case StatusRejected:
		return from.IsActive()
	case StatusCancelled:
		return from != StatusCancelled
	}
	for _, next := range forwardEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func activeStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
