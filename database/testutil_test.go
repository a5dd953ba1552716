package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"daily-quote-server/models"
)

// setupTestDB points the package at a fresh in-memory database. Each
// test gets its own named shared-cache database so pooled connections
// see the same data.
func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Quote{},
		&models.User{},
		&models.DeviceToken{},
		&models.UserFavorite{},
		&models.UserDelivery{},
		&models.DailyQuote{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	DB = db
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = nil
	})
}

func mustSaveQuote(t *testing.T, text string, author *string) *models.Quote {
	t.Helper()
	quote := &models.Quote{Text: text, Author: author}
	if err := SaveQuote(quote); err != nil {
		t.Fatalf("save quote %q: %v", text, err)
	}
	return quote
}

func mustRegisterUser(t *testing.T, deviceID string, token *string) *models.User {
	t.Helper()
	user, err := RegisterUser(deviceID, token, nil, nil)
	if err != nil {
		t.Fatalf("register user %s: %v", deviceID, err)
	}
	return user
}

func strPtr(s string) *string {
	return &s
}
