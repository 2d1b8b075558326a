package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spotlight/internal/config"
	"spotlight/internal/database"
	"spotlight/internal/models"
	"spotlight/internal/repository"
	"spotlight/internal/service"
	"spotlight/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// base64("test-webhook-signing-secret!") with the standard whsec_ prefix.
const testWebhookSecret = "whsec_dGVzdC13ZWJob29rLXNpZ25pbmctc2VjcmV0IQ=="

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

// newTestServer wires a Server against an in-memory database and a stub
// object store. Authentication is exercised separately; handler tests
// inject the caller's Clerk id via withClerkID.
func newTestServer(t *testing.T) (*Server, *stubStore) {
	t.Helper()
	db := newTestDB(t)
	store := newStubStore()

	webhook, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)

	s := &Server{
		config:  &config.Config{Env: "test", Port: "0"},
		db:      db,
		store:   store,
		webhook: webhook,

		userRepo:         repository.NewUserRepository(db),
		postRepo:         repository.NewPostRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		followRepo:       repository.NewFollowRepository(db),
		bookmarkRepo:     repository.NewBookmarkRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo, s.followRepo, db)
	s.postService = service.NewPostService(s.postRepo, store, db)
	s.commentService = service.NewCommentService(s.commentRepo, db)
	s.bookmarkService = service.NewBookmarkService(s.bookmarkRepo, db)
	return s, store
}

// withClerkID stands in for AuthRequired in handler tests.
func withClerkID(clerkID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("clerkID", clerkID)
		return c.Next()
	}
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

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// signWebhook produces the svix signature headers for a payload, the
// same way the provider computes them: HMAC-SHA256 over
// "{id}.{timestamp}.{body}" keyed by the decoded whsec_ secret.
func signWebhook(t *testing.T, msgID, timestamp string, body []byte) string {
	t.Helper()
	secret, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(testWebhookSecret, "whsec_"))
	require.NoError(t, err)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// stubStore is an in-memory ObjectStore for handler tests.
type stubStore struct {
	objects map[string]bool
	deleted []string
}

func newStubStore() *stubStore {
	return &stubStore{objects: map[string]bool{}}
}

func (s *stubStore) PresignUpload(_ context.Context, userID uint, contentType string) (*storage.PresignedUpload, error) {
	key := fmt.Sprintf("posts/%d/stub", userID)
	return &storage.PresignedUpload{
		UploadURL: "https://uploads.example.com/" + key,
		Key:       key,
		ExpiresIn: 900,
	}, nil
}

func (s *stubStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *stubStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}
