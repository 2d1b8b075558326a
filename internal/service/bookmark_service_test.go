package service

import (
	"context"
	"errors"
	"testing"

	"spotlight/internal/models"
	"spotlight/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkService(t *testing.T) (*BookmarkService, *testDeps) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBookmarkService(repository.NewBookmarkRepository(db), db)
	return svc, &testDeps{db: db}
}

func TestBookmarkService_Toggle(t *testing.T) {
	svc, deps := newBookmarkService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	bob := seedUser(t, deps.db, "bob")
	post := seedPost(t, deps.db, alice, "sunrise")

	bookmarked, err := svc.ToggleBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)
	assert.Equal(t, int64(1), countRows(t, deps.db, &models.Bookmark{}, ""))

	// Bookmarks are private: no counters move, nothing fans out.
	assert.Equal(t, 0, reloadPost(t, deps.db, post.ID).Likes)
	assert.Equal(t, int64(0), countRows(t, deps.db, &models.Notification{}, ""))

	bookmarked, err = svc.ToggleBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.Equal(t, int64(0), countRows(t, deps.db, &models.Bookmark{}, ""))
}

func TestBookmarkService_Toggle_MissingPost(t *testing.T) {
	svc, deps := newBookmarkService(t)
	alice := seedUser(t, deps.db, "alice")

	_, err := svc.ToggleBookmark(context.Background(), alice.ID, 9999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestBookmarkService_GetBookmarks(t *testing.T) {
	svc, deps := newBookmarkService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	bob := seedUser(t, deps.db, "bob")
	first := seedPost(t, deps.db, alice, "first")
	seedPost(t, deps.db, alice, "unsaved")

	_, err := svc.ToggleBookmark(ctx, bob.ID, first.ID)
	require.NoError(t, err)

	posts, err := svc.GetBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.True(t, posts[0].IsBookmarked)
}
