package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"spotlight/internal/database"
	"spotlight/internal/models"
	"spotlight/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", author.ID).
		UpdateColumn("posts", gorm.Expr("posts + 1")).Error)
	return post
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

// testDeps bundles the shared fixtures a service test needs.
type testDeps struct {
	db    *gorm.DB
	store *stubStore
}

// stubStore is an in-memory ObjectStore for tests.
type stubStore struct {
	objects map[string]bool
	deleted []string
	failAll bool
}

func newStubStore(keys ...string) *stubStore {
	s := &stubStore{objects: map[string]bool{}}
	for _, k := range keys {
		s.objects[k] = true
	}
	return s
}

func (s *stubStore) PresignUpload(_ context.Context, userID uint, contentType string) (*storage.PresignedUpload, error) {
	if s.failAll {
		return nil, fmt.Errorf("presign unavailable")
	}
	key := fmt.Sprintf("posts/%d/stub", userID)
	s.objects[key] = false
	return &storage.PresignedUpload{
		UploadURL: "https://uploads.example.com/" + key + "?sig=stub&type=" + contentType,
		Key:       key,
		ExpiresIn: 900,
	}, nil
}

func (s *stubStore) Exists(_ context.Context, key string) (bool, error) {
	if s.failAll {
		return false, fmt.Errorf("storage unavailable")
	}
	_, ok := s.objects[key]
	return ok, nil
}

func (s *stubStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	if s.failAll {
		return fmt.Errorf("storage unavailable")
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}
