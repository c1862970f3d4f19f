package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasFullFloorPlan(t *testing.T) {
	c := Default()

	assert.Equal(t, 38, c.Len())

	b, ok := c.Lookup(17)
	require.True(t, ok)
	assert.Equal(t, CategoryCraft, b.Category)
	assert.True(t, b.Price.Equal(decimal.NewFromInt(350)))

	all := c.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "booths must be sorted by id")
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Default().Lookup(999)
	assert.False(t, ok)
}

func TestNew_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		booths []Booth
	}{
		{"duplicate id", []Booth{booth(1, CategoryFood, 0, 0, 100), booth(1, CategoryCraft, 0, 0, 100)}},
		{"unknown category", []Booth{{ID: 2, Category: "henna", Price: decimal.NewFromInt(10)}}},
		{"negative price", []Booth{{ID: 3, Category: CategoryFood, Price: decimal.NewFromInt(-1)}}},
		{"zero id", []Booth{{ID: 0, Category: CategoryFood}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.booths)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booths.json")
	content := `[{"id": 1, "category": "food", "price": 125.5, "position": {"x": 1, "y": 2, "width": 5, "height": 8}},
	             {"id": 2, "category": "jewelry", "price": "300"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	b, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "125.5", b.Price.String())
	assert.Equal(t, 2.0, b.Position.Y)
}

func TestParseVendorCategory(t *testing.T) {
	tests := []struct {
		label string
		want  Category
		err   error
	}{
		{"Food Vendor", CategoryFood, nil},
		{"Clothing Vendor", CategoryClothing, nil},
		{"jewelry vendor", CategoryJewelry, nil},
		{"Craft Booth", CategoryCraft, nil},
		{"craft", CategoryCraft, nil},
		{" FOOD ", CategoryFood, nil},
		{"Henna Booth", "", ErrCategoryNotSupported},
		{"", "", ErrCategoryNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseVendorCategory(tt.label)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
