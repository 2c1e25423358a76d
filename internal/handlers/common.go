package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/services"
)

// actorFromCtx rebuilds the acting identity from the claims the JWT
// middleware stored in the request context.
func actorFromCtx(c *fiber.Ctx) services.Actor {
	actor := services.Actor{}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if role, ok := c.Locals("user_type").(string); ok {
		actor.Role = models.Role(role)
	}
	return actor
}

// errorResponse maps a service error to its stable code and HTTP status.
// Client apps switch on "code", never on the message text.
func errorResponse(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"code":    apperrors.Code(err),
		"message": err.Error(),
	})
}
