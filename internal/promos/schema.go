package promos

import (
	"boothreserve/internal/shared/database"

	"gorm.io/gorm"
)

// Migrate creates the promos table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Promo{}); err != nil {
		return err
	}
	if err := database.EnsureCheckConstraint(db, "promos", "ck_promos_discount_type", "discount_type IN ('percent', 'flat')"); err != nil {
		return err
	}
	return database.EnsureCheckConstraint(db, "promos", "ck_promos_window", "end_date > start_date")
}
