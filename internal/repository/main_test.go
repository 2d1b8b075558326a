package repository

import (
	"fmt"
	"strings"
	"testing"

	"spotlight/internal/database"
	"spotlight/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the full
// schema into it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store while still isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ClerkID:  "clerk_" + username,
		Username: username,
		Fullname: "Test " + username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, caption string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:     author.ID,
		ImageURL:   "https://cdn.example.com/" + caption + ".jpg",
		StorageKey: "posts/" + caption,
		Caption:    caption,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
