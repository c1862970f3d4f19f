package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// EnsurePartialUniqueIndex creates a unique index that only covers rows matching where.
func EnsurePartialUniqueIndex(db *gorm.DB, name, table string, columns []string, where string) error {
	err := db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE %s`,
		name, table, strings.Join(columns, ", "), where,
	)).Error
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// EnsureCheckConstraint adds a CHECK constraint unless one with the same name exists
func EnsureCheckConstraint(db *gorm.DB, table, name, expr string) error {
	err := db.Exec(fmt.Sprintf(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
				ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
			END IF;
		END $$;
	`, name, table, name, expr)).Error
	if err != nil {
		return fmt.Errorf("add constraint %s: %w", name, err)
	}
	return nil
}

// QuoteList renders values as a SQL literal list: 'a', 'b'
func QuoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
