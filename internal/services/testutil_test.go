package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"huntboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database migrated with the full
// schema. A single pooled connection keeps the shared-cache sqlite file
// alive and avoids lock contention between queries.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Comment{},
		&models.Vote{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &user
}

func seedProduct(t *testing.T, gdb *gorm.DB, owner *models.User, title, slug string) *models.Product {
	t.Helper()
	product := models.Product{
		Slug:    slug,
		OwnerID: owner.ID,
		Title:   title,
		Status:  models.StatusApproved,
	}
	if err := gdb.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", slug, err)
	}
	return &product
}

// setCreatedAt pins a comment's creation time so ordering assertions do
// not depend on insertion timing.
func setCreatedAt(t *testing.T, gdb *gorm.DB, comment *models.Comment, at time.Time) {
	t.Helper()
	if err := gdb.Model(&models.Comment{}).Where("id = ?", comment.ID).
		UpdateColumn("created_at", at).Error; err != nil {
		t.Fatalf("set created_at: %v", err)
	}
}
