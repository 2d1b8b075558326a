package server

import (
	"net/http"

	"spotlight/internal/clerk"
	"spotlight/internal/middleware"
	"spotlight/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ClerkWebhook handles POST /clerk-webhook. Deliveries are authenticated
// by their svix signature over the raw body; a request that fails any
// verification step is rejected with 400 and produces no account.
// Events other than user.created are acknowledged and ignored.
func (s *Server) ClerkWebhook(c *fiber.Ctx) error {
	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		middleware.WebhookEvents.WithLabelValues("missing_headers").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred -- no svix headers")
	}

	body := c.Body()
	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	if err := s.webhook.Verify(body, headers); err != nil {
		middleware.WebhookEvents.WithLabelValues("invalid_signature").Inc()
		middleware.Logger.WarnContext(c.Context(), "webhook signature verification failed", "error", err)
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	event, err := clerk.ParseEvent(body)
	if err != nil {
		middleware.WebhookEvents.WithLabelValues("malformed_payload").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	if event.Type == clerk.EventUserCreated {
		data, err := event.UserCreated()
		if err != nil {
			middleware.WebhookEvents.WithLabelValues("malformed_payload").Inc()
			return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
		}

		err = s.userService.CreateUser(c.Context(), service.CreateUserInput{
			ClerkID:  data.ID,
			Username: data.Username(),
			Fullname: data.Fullname(),
			Email:    data.Email(),
			Image:    data.ImageURL,
		})
		if err != nil {
			middleware.WebhookEvents.WithLabelValues("create_failed").Inc()
			middleware.Logger.ErrorContext(c.Context(), "webhook user creation failed",
				"clerk_id", data.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error creating user")
		}
	}

	middleware.WebhookEvents.WithLabelValues("processed").Inc()
	return c.Status(fiber.StatusOK).SendString("Webhook processed successfully")
}
