package catalog

import "github.com/shopspring/decimal"

func booth(id int, category Category, x, y float64, price int64) Booth {
	return Booth{
		ID:       id,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Position: Position{X: x, Y: y, Width: 5, Height: 8},
	}
}

// defaultBooths is the standard event floor plan
var defaultBooths = []Booth{
	booth(17, CategoryCraft, 15, 18, 350),
	booth(16, CategoryCraft, 22, 18, 200),
	booth(15, CategoryCraft, 29, 18, 200),
	booth(14, CategoryCraft, 36, 18, 200),

	booth(13, CategoryClothing, 61, 18, 200),
	booth(12, CategoryClothing, 68, 18, 200),
	booth(11, CategoryClothing, 75, 18, 200),
	booth(10, CategoryClothing, 82, 18, 350),

	booth(18, CategoryFood, 4.5, 20, 350),
	booth(19, CategoryFood, 4.5, 36, 200),
	booth(20, CategoryFood, 4.5, 48, 200),
	booth(21, CategoryFood, 4.5, 60, 200),
	booth(22, CategoryFood, 4.5, 72, 200),

	booth(9, CategoryClothing, 92, 25, 350),
	booth(8, CategoryClothing, 92, 37, 200),
	booth(7, CategoryClothing, 92, 49, 200),
	booth(6, CategoryClothing, 92, 61, 200),
	booth(5, CategoryClothing, 92, 73, 200),

	booth(29, CategoryCraft, 16, 33, 350),
	booth(30, CategoryCraft, 25, 32, 350),
	booth(28, CategoryCraft, 16, 46, 200),
	booth(31, CategoryCraft, 27, 45, 200),
	booth(27, CategoryCraft, 16, 60, 350),
	booth(32, CategoryCraft, 25, 59, 350),

	booth(35, CategoryClothing, 70, 33, 350),
	booth(36, CategoryJewelry, 80, 32, 350),
	booth(34, CategoryClothing, 70, 46, 200),
	booth(37, CategoryJewelry, 80, 45, 200),
	booth(33, CategoryClothing, 70, 60, 350),
	booth(38, CategoryJewelry, 80, 59, 350),

	booth(23, CategoryFood, 10, 78, 200),
	booth(24, CategoryFood, 16, 78, 200),
	booth(25, CategoryFood, 23, 78, 400),

	booth(26, CategoryCraft, 35, 78, 250),
	booth(1, CategoryCraft, 58, 78, 250),

	booth(2, CategoryJewelry, 72, 78, 400),
	booth(3, CategoryJewelry, 79, 78, 200),
	booth(4, CategoryJewelry, 85, 78, 200),
}
