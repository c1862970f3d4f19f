package reservations

import (
	"time"

	"boothreserve/internal/catalog"
)

type ReservationResponse struct {
	ID              string           `json:"id"`
	EventID         string           `json:"event_id"`
	BoothID         int              `json:"booth_id"`
	Category        catalog.Category `json:"category"`
	VendorRef       string           `json:"vendor_ref"`
	VendorName      string           `json:"vendor_name"`
	Contact         Contact          `json:"contact"`
	Socials         Socials          `json:"socials"`
	Details         CategoryDetails  `json:"details"`
	Notes           string           `json:"notes,omitempty"`
	Status          Status           `json:"status"`
	HoldExpiresAt   *time.Time       `json:"hold_expires_at,omitempty"`
	Pricing         Pricing          `json:"pricing"`
	TermsAcceptedAt time.Time        `json:"terms_accepted_at"`
	StatusChangedAt time.Time        `json:"status_changed_at"`
	ConfirmedAt     *time.Time       `json:"confirmed_at,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

type ReservationListResponse struct {
	Items []ReservationResponse `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Pages int                   `json:"pages"`
}

// ReservationPage is one page of an operator listing
type ReservationPage struct {
	Items []Reservation
	Total int64
	Page  int
	Limit int
}

func ToReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID.String(),
		EventID:         r.EventID,
		BoothID:         r.BoothID,
		Category:        r.Category,
		VendorRef:       r.VendorRef,
		VendorName:      r.VendorName,
		Contact:         r.Contact,
		Socials:         r.Socials,
		Details:         r.Details,
		Notes:           r.Notes,
		Status:          r.Status,
		HoldExpiresAt:   r.HoldExpiresAt,
		Pricing:         r.Pricing,
		TermsAcceptedAt: r.TermsAcceptedAt,
		StatusChangedAt: r.StatusChangedAt,
		ConfirmedAt:     r.ConfirmedAt,
		PaidAt:          r.PaidAt,
		CreatedAt:       r.CreatedAt,
	}
}

func toListResponse(page *ReservationPage) ReservationListResponse {
	items := make([]ReservationResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToReservationResponse(&page.Items[i]))
	}

	pages := 0
	if page.Limit > 0 {
		pages = int((page.Total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return ReservationListResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: pages,
	}
}
