package services

import (
	"decourse/cache"
	"decourse/config"
	"decourse/database"
	courseModels "decourse/models/course"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB swaps the global database handle for a fresh in-memory sqlite
// instance and resets the cache and config, so the services under test see
// an isolated world.
func setupTestDB(t *testing.T) {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database while staying isolated per test.
	dsn := fmt.Sprintf("file:decourse_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	cache.Client = cache.NewMemoryCache()
	config.AppConfig = &config.Config{
		DefaultCodeExpiryDays: 7,
		Environment:           "test",
		BypassUserIDs:         map[uint]struct{}{},
	}
}

// completeTrack marks every lesson of a track/platform pair completed.
func completeTrack(t *testing.T, userID uint, track, platform string) {
	t.Helper()
	for _, path := range courseModels.LessonPaths(track, platform) {
		if _, err := MarkLessonComplete(userID, path, 60); err != nil {
			t.Fatalf("failed to complete lesson %s: %v", path, err)
		}
	}
}
