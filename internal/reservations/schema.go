package reservations

import (
	"boothreserve/internal/shared/database"

	"gorm.io/gorm"
)

// Migrate creates the reservations table with its partial unique index and CHECKs
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Reservation{}); err != nil {
		return err
	}

	if err := database.EnsurePartialUniqueIndex(db, ActiveBoothIndex, "reservations",
		[]string{"event_id", "booth_id"},
		"status IN ("+database.QuoteList(activeStatusStrings())+")",
	); err != nil {
		return err
	}

	checks := []struct{ name, expr string }{
		{"ck_reservations_status", "status IN ('held', 'under_review', 'approved', 'confirmed', 'paid', 'rejected', 'cancelled', 'expired')"},
		{"ck_reservations_hold_deadline", "(status = 'held') = (hold_expires_at IS NOT NULL)"},
		{"ck_reservations_final_amount", "final_amount >= 0 AND final_amount <= base_price"},
	}
	for _, check := range checks {
		if err := database.EnsureCheckConstraint(db, "reservations", check.name, check.expr); err != nil {
			return err
		}
	}
	return nil
}
