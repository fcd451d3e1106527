// Package testdb opens throwaway SQLite databases for tests.
package testdb

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cafe-menu-api/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Clock returns a time source that advances one second on every call,
// so rows created in sequence get strictly increasing timestamps.
func Clock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

// New opens a migrated database file inside t.TempDir().
func New(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.Config{DatabaseURL: filepath.Join(t.TempDir(), "test.db")}
	db, err := config.OpenDB(cfg, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: Clock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
