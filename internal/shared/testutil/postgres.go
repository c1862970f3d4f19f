// Package testutil opens the Postgres database used by store integration tests.
package testutil

import (
	"os"
	"testing"
	"time"

	"boothreserve/internal/shared/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DSNEnv = "TEST_DATABASE_DSN"

// OpenPostgres connects to TEST_DATABASE_DSN and runs the migrators.
// The test is skipped when the variable is unset.
func OpenPostgres(t *testing.T, migrators ...database.Migrator) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping Postgres integration test", DSNEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, migrators...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
