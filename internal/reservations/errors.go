package reservations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"boothreserve/internal/promos"
)

var (
	ErrConflict            = errors.New("booth is already reserved for this event")
	ErrStaleState          = errors.New("reservation status changed concurrently")
	ErrHoldExpired         = fmt.Errorf("hold deadline has passed: %w", ErrStaleState)
	ErrReservationNotFound = errors.New("reservation not found")
	ErrBoothNotFound       = errors.New("booth not found")
	ErrCategoryMismatch    = errors.New("vendor category does not match booth category")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrForbidden           = errors.New("reservation belongs to another vendor")
)

// ValidationError lists every field that was missing or malformed
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid reservation request: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, problem string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = problem
	}
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// PromoRejectedError carries the evaluator's reason for refusing a code
type PromoRejectedError struct {
	Code   string
	Reason promos.Reason
}

func (e *PromoRejectedError) Error() string {
	return fmt.Sprintf("promo code %q rejected: %s", e.Code, e.Reason)
}
