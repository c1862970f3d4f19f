package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	c := NewFixed(at)
	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestManual(t *testing.T) {
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	c := NewManual(at)

	c.Advance(49 * time.Hour)
	assert.Equal(t, at.Add(49*time.Hour), c.Now())

	c.Set(at)
	assert.Equal(t, at, c.Now())
}

func TestSystem(t *testing.T) {
	before := time.Now()
	now := NewSystem().Now()
	assert.False(t, now.Before(before.Add(-time.Second)))
}
