package server

import (
	"spotlight/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleBookmark handles POST /api/posts/:id/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	bookmarked, err := s.bookmarkService.ToggleBookmark(c.Context(), caller.ID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarked": bookmarked})
}

// GetBookmarks handles GET /api/bookmarks
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	posts, err := s.bookmarkService.GetBookmarks(c.Context(), caller.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}
