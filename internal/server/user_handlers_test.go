package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"spotlight/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	s, _ := newTestServer(t)
	alice := seedUser(t, s.db, "alice")

	app := fiber.New()
	app.Get("/users/me", withClerkID(alice.ClerkID), s.GetMyProfile)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestUpdateMyProfile(t *testing.T) {
	s, _ := newTestServer(t)
	alice := seedUser(t, s.db, "alice")

	app := fiber.New()
	app.Put("/users/me", withClerkID(alice.ClerkID), s.UpdateMyProfile)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/users/me", fiber.Map{
		"fullname": "Alice Updated",
		"bio":      "shoots film",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, "Alice Updated", got.Fullname)
	assert.Equal(t, "shoots film", got.Bio)

	// Empty fullname is rejected.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/users/me", fiber.Map{"fullname": ""}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUserProfile(t *testing.T) {
	s, _ := newTestServer(t)
	alice := seedUser(t, s.db, "alice")
	bob := seedUser(t, s.db, "bob")

	app := fiber.New()
	app.Get("/users/:id", withClerkID(alice.ClerkID), s.GetUserProfile)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{"success", fmt.Sprintf("/users/%d", bob.ID), http.StatusOK},
		{"invalid id", "/users/abc", http.StatusBadRequest},
		{"not found", "/users/9999", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestToggleFollowFlow(t *testing.T) {
	s, _ := newTestServer(t)
	alice := seedUser(t, s.db, "alice")
	bob := seedUser(t, s.db, "bob")

	app := fiber.New()
	app.Post("/users/:id/follow", withClerkID(alice.ClerkID), s.ToggleFollow)
	app.Get("/users/:id", withClerkID(alice.ClerkID), s.GetUserProfile)
	app.Get("/users/:id/following", withClerkID(alice.ClerkID), s.GetFollowing)

	// Follow.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, fmt.Sprintf("/users/%d/follow", bob.ID), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggle struct {
		Following bool `json:"following"`
	}
	decodeBody(t, resp, &toggle)
	assert.True(t, toggle.Following)

	// Profile view reflects the relationship.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var profile struct {
		User        models.User `json:"user"`
		IsFollowing bool        `json:"is_following"`
	}
	decodeBody(t, resp, &profile)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, 1, profile.User.Followers)

	// Following list contains bob.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%d/following", alice.ID), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var following []models.UserSummary
	decodeBody(t, resp, &following)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	// Unfollow.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, fmt.Sprintf("/users/%d/follow", bob.ID), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	decodeBody(t, resp, &toggle)
	assert.False(t, toggle.Following)
}

func TestToggleFollow_MissingTarget(t *testing.T) {
	s, _ := newTestServer(t)
	alice := seedUser(t, s.db, "alice")

	app := fiber.New()
	app.Post("/users/:id/follow", withClerkID(alice.ClerkID), s.ToggleFollow)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/9999/follow", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
