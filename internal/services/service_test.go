package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pranav-builds/jobtrackr/internal/models"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// pinned to one connection so every query sees the same :memory: instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Board{}, &models.Job{}, &models.JobEvent{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func newTestJobService(t *testing.T) *JobService {
	t.Helper()
	db := newTestDB(t)
	return NewJobService(db, NewMatcherService(db), NewFeedService())
}

func testCtx() context.Context { return context.Background() }
