// Package dbtest opens throwaway sqlite databases for repository tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"news_backend/internal/platform/db"
)

// Open returns an in-memory sqlite database with foreign keys enforced and
// the given models migrated in order. Each call gets its own database.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	open, err := db.NewOpener(db.DriverSQLite)
	require.NoError(t, err)
	gdb, err := open(db.BuildDSN(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:"}))
	require.NoError(t, err, "failed to initialize test database")

	// Every pooled connection to :memory: would see a different database.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb, models...), "failed to migrate tables")
	return gdb
}
