package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spotlight/internal/models"
	"spotlight/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(t *testing.T) (*CommentService, *testDeps) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), db)
	return svc, &testDeps{db: db}
}

func TestCommentService_AddComment(t *testing.T) {
	svc, deps := newCommentService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	bob := seedUser(t, deps.db, "bob")
	post := seedPost(t, deps.db, alice, "sunrise")

	comment, err := svc.AddComment(ctx, bob.ID, post.ID, "great shot")
	require.NoError(t, err)
	assert.Equal(t, "great shot", comment.Content)
	assert.Equal(t, "bob", comment.User.Username)

	assert.Equal(t, 1, reloadPost(t, deps.db, post.ID).Comments)

	var notification models.Notification
	require.NoError(t, deps.db.Where("receiver_id = ?", alice.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeComment, notification.Type)
	require.NotNil(t, notification.CommentID)
	assert.Equal(t, comment.ID, *notification.CommentID)
	require.NotNil(t, notification.PostID)
	assert.Equal(t, post.ID, *notification.PostID)
}

func TestCommentService_AddComment_OwnPostNoNotification(t *testing.T) {
	svc, deps := newCommentService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	post := seedPost(t, deps.db, alice, "selfie")

	_, err := svc.AddComment(ctx, alice.ID, post.ID, "caption says it all")
	require.NoError(t, err)
	assert.Equal(t, 1, reloadPost(t, deps.db, post.ID).Comments)
	assert.Equal(t, int64(0), countRows(t, deps.db, &models.Notification{}, ""))
}

func TestCommentService_AddComment_Validation(t *testing.T) {
	svc, deps := newCommentService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	post := seedPost(t, deps.db, alice, "sunrise")

	for _, content := range []string{"", "   ", strings.Repeat("x", maxCommentLength+1)} {
		_, err := svc.AddComment(ctx, alice.ID, post.ID, content)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	}
	assert.Equal(t, 0, reloadPost(t, deps.db, post.ID).Comments)
}

func TestCommentService_AddComment_MissingPost(t *testing.T) {
	svc, deps := newCommentService(t)
	alice := seedUser(t, deps.db, "alice")

	_, err := svc.AddComment(context.Background(), alice.ID, 9999, "hello")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestCommentService_GetComments(t *testing.T) {
	svc, deps := newCommentService(t)
	ctx := context.Background()
	alice := seedUser(t, deps.db, "alice")
	bob := seedUser(t, deps.db, "bob")
	post := seedPost(t, deps.db, alice, "sunrise")

	_, err := svc.AddComment(ctx, bob.ID, post.ID, "first")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, alice.ID, post.ID, "second")
	require.NoError(t, err)

	comments, err := svc.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content, "oldest first")
	assert.Equal(t, "second", comments[1].Content)
}
