package availability

import "time"

type Summary struct {
	Available int `json:"available"`
	Held      int `json:"held"`
	Booked    int `json:"booked"`
	Confirmed int `json:"confirmed"`
}

type AvailabilityResponse struct {
	EventID string              `json:"eventId"`
	Booths  []BoothAvailability `json:"booths"`
	Summary Summary             `json:"summary"`
	AsOf    time.Time           `json:"asOf"`
}

func toAvailabilityResponse(eventID string, booths []BoothAvailability, asOf time.Time) AvailabilityResponse {
	var summary Summary
	for _, b := range booths {
		switch b.Status {
		case BoothAvailable:
			summary.Available++
		case BoothHeld:
			summary.Held++
		case BoothBooked:
			summary.Booked++
		case BoothConfirmed:
			summary.Confirmed++
		}
	}
	return AvailabilityResponse{
		EventID: eventID,
		Booths:  booths,
		Summary: summary,
		AsOf:    asOf,
	}
}
