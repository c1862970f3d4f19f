package catalog

import (
	"github.com/shopspring/decimal"
)

// Category is the table category a booth is laid out for
type Category string

const (
	CategoryFood     Category = "food"
	CategoryClothing Category = "clothing"
	CategoryJewelry  Category = "jewelry"
	CategoryCraft    Category = "craft"
)

// IsValid checks if the category is one the floor plan knows about
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryClothing, CategoryJewelry, CategoryCraft:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Position is floor plan metadata. The engine never interprets it.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Booth describes one physical booth on the event floor
type Booth struct {
	ID       int             `json:"id"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Position Position        `json:"position"`
}
