package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/services"
)

// RiderHandler handles the rider-side availability and location endpoints.
type RiderHandler struct {
	service *services.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(service *services.RiderService) *RiderHandler {
	return &RiderHandler{
		service: service,
	}
}

// RegisterRoutes registers the rider routes with the Fiber app.
func (h *RiderHandler) RegisterRoutes(router fiber.Router) {
	riderRoutes := router.Group("/riders")
	riderRoutes.Patch("/availability", h.HandleSetAvailability)
	riderRoutes.Patch("/location", h.HandleUpdateLocation)
}

// availabilityRequest is the body for toggling availability.
type availabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// HandleSetAvailability flips the authenticated rider's availability flag.
func (h *RiderHandler) HandleSetAvailability(c *fiber.Ctx) error {
	var req availabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	actor := actorFromCtx(c)
	if err := h.service.SetAvailability(actor.ID, req.IsAvailable); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Availability updated",
		"is_available": req.IsAvailable,
	})
}

// locationRequest is the body for a rider position report.
type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleUpdateLocation records the authenticated rider's position.
func (h *RiderHandler) HandleUpdateLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	actor := actorFromCtx(c)
	err := h.service.UpdateLocation(actor.ID, models.GeoPoint{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Location updated",
	})
}
