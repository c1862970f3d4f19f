package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrator creates or updates the tables and constraints one domain owns
type Migrator func(db *gorm.DB) error

// Migrate runs each migrator in order
func Migrate(db *gorm.DB, migrators ...Migrator) error {
	for i, migrate := range migrators {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
