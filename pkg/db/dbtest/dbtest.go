// Package dbtest opens isolated sqlite databases for repository and service tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lien-travel/planner-backend/pkg/db"
	"github.com/lien-travel/planner-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// Open returns an in-memory sqlite connection private to the calling test with
// every model migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameReplacer.Replace(t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// Client wraps Open in a db.Client so services get a real transaction runner.
func Client(t *testing.T) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := Open(t)
	return db.NewFromConn(conn), conn
}

// SeedUser inserts a user with a unique email derived from name.
func SeedUser(t *testing.T, conn *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        strings.ToLower(nameReplacer.Replace(name)) + "@example.com",
		PasswordHash: "hash",
		Name:         name,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
