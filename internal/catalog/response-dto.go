package catalog

import "github.com/shopspring/decimal"

type BoothResponse struct {
	ID       int             `json:"id"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Position Position        `json:"position"`
}

type BoothListResponse struct {
	Booths []BoothResponse `json:"booths"`
	Total  int             `json:"total"`
}

func toBoothResponse(b Booth) BoothResponse {
	return BoothResponse{
		ID:       b.ID,
		Category: b.Category,
		Price:    b.Price,
		Position: b.Position,
	}
}
