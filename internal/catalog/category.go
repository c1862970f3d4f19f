package catalog

import (
	"errors"
	"strings"
)

var ErrCategoryNotSupported = errors.New("vendor category is not supported by the floor plan")

var vendorCategories = map[string]Category{
	"food vendor":     CategoryFood,
	"clothing vendor": CategoryClothing,
	"jewelry vendor":  CategoryJewelry,
	"craft booth":     CategoryCraft,
}

// ParseVendorCategory maps a vendor category label ("Food Vendor") or a plain
// table category ("food") to the table category. Henna booths have no tables.
func ParseVendorCategory(label string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if c, ok := vendorCategories[normalized]; ok {
		return c, nil
	}
	if c := Category(normalized); c.IsValid() {
		return c, nil
	}
	return "", ErrCategoryNotSupported
}
