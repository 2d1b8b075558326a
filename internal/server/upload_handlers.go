package server

import (
	"spotlight/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateUploadURL handles POST /api/uploads. It returns a short-lived
// presigned PUT URL; the client uploads the image directly to object
// storage and then creates the post with the returned key.
func (s *Server) GenerateUploadURL(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		ContentType string `json:"content_type"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	upload, err := s.postService.GenerateUploadURL(c.Context(), caller.ID, req.ContentType)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(upload)
}
