package server

import (
	"spotlight/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	notifications, err := s.notificationRepo.ListByReceiver(c.Context(), caller.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(notifications)
}
