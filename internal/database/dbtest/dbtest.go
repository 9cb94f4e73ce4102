// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"consultancy/internal/database"
)

func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	if len(models) > 0 {
		require.NoError(t, database.Migrate(db, models...))
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
