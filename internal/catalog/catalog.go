package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Catalog is an immutable, in-memory booth table. Safe for concurrent reads.
type Catalog struct {
	byID   map[int]Booth
	sorted []Booth
}

// New builds a catalog from the given booths
func New(booths []Booth) (*Catalog, error) {
	byID := make(map[int]Booth, len(booths))
	for _, b := range booths {
		if b.ID <= 0 {
			return nil, fmt.Errorf("booth id must be positive, got %d", b.ID)
		}
		if !b.Category.IsValid() {
			return nil, fmt.Errorf("booth %d: unknown category %q", b.ID, b.Category)
		}
		if b.Price.IsNegative() {
			return nil, fmt.Errorf("booth %d: negative price", b.ID)
		}
		if _, dup := byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate booth id %d", b.ID)
		}
		byID[b.ID] = b
	}

	sorted := make([]Booth, 0, len(byID))
	for _, b := range byID {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &Catalog{byID: byID, sorted: sorted}, nil
}

// Default returns the built-in floor plan
func Default() *Catalog {
	c, err := New(defaultBooths)
	if err != nil {
		panic(fmt.Sprintf("catalog: default floor plan is invalid: %v", err))
	}
	return c
}

// LoadFile reads a JSON array of booths
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var booths []Booth
	if err := json.Unmarshal(data, &booths); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return New(booths)
}

// Lookup returns the booth with the given id
func (c *Catalog) Lookup(id int) (Booth, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// All returns every booth ordered by id. The slice must not be modified.
func (c *Catalog) All() []Booth {
	return c.sorted
}

// Len returns the number of booths
func (c *Catalog) Len() int {
	return len(c.sorted)
}
