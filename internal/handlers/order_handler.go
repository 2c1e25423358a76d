package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Patch("/:id/status", h.HandleTransition)
	orderRoutes.Post("/:id/accept", h.HandleAcceptOrder)
	orderRoutes.Post("/:id/location", h.HandleRiderLocation)
	orderRoutes.Post("/:id/rating", h.HandleRateOrder)
}

// HandleListOrders lists the orders visible to the authenticated actor.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(actorFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// HandlePlaceOrder creates a new order for the authenticated customer.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	if actor.Role != models.RoleCustomer {
		return errorResponse(c, fmt.Errorf("%w: only customers place orders", apperrors.ErrUnauthorized))
	}

	var req services.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	req.CustomerID = actor.ID

	order, err := h.service.PlaceOrder(req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// transitionRequest is the body for a status transition.
type transitionRequest struct {
	Status   string           `json:"status"`
	Note     string           `json:"note"`
	Location *models.GeoPoint `json:"location"`
}

// HandleTransition moves an order to a new status on behalf of the actor.
func (h *OrderHandler) HandleTransition(c *fiber.Ctx) error {
	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	order, err := h.service.Transition(c.Params("id"), status, actorFromCtx(c), req.Note, req.Location)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// HandleAcceptOrder claims a ready order for the authenticated rider.
func (h *OrderHandler) HandleAcceptOrder(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	order, err := h.service.AcceptOrder(c.Params("id"), actor.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// riderLocationRequest is the body for a rider position ping.
type riderLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleRiderLocation records a rider position ping and returns the
// recomputed live ETA.
func (h *OrderHandler) HandleRiderLocation(c *fiber.Ctx) error {
	var req riderLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	actor := actorFromCtx(c)
	eta, err := h.service.UpdateRiderLocation(c.Params("id"), actor.ID, models.GeoPoint{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Location updated",
		"eta_minutes": eta,
	})
}

// ratingRequest is the body for post-delivery ratings.
type ratingRequest struct {
	RiderRating      int `json:"rider_rating"`
	ExperienceRating int `json:"experience_rating"`
}

// HandleRateOrder records the customer's post-delivery ratings.
func (h *OrderHandler) HandleRateOrder(c *fiber.Ctx) error {
	var req ratingRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	if err := h.service.RateOrder(c.Params("id"), actorFromCtx(c), req.RiderRating, req.ExperienceRating); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Thank you for your rating",
	})
}
