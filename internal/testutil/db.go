package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskvault-dev/taskvault/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database with the full schema.
// Foreign keys are switched on so cascade constraints behave like the
// production store; the pool is pinned to one connection so the pragma
// and the memory database stick.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.Migrate(database))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return database
}
