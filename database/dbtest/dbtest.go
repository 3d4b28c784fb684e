// Package dbtest opens a migrated in-memory sqlite database for tests.
package dbtest

import (
	"testing"

	"artist-site/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
