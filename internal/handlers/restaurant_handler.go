package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/services"
)

// RestaurantHandler handles HTTP requests for restaurants.
type RestaurantHandler struct {
	service  *services.RestaurantService
	validate *validator.Validate
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(service *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the restaurant routes with the Fiber app.
func (h *RestaurantHandler) RegisterRoutes(router fiber.Router) {
	restaurantRoutes := router.Group("/restaurants")
	restaurantRoutes.Get("/", h.HandleGetRestaurants)
	restaurantRoutes.Get("/:id", h.HandleGetRestaurantByID)
	restaurantRoutes.Post("/", h.HandleCreateRestaurant)
	restaurantRoutes.Put("/:id", h.HandleUpdateRestaurant)
}

// HandleGetRestaurants retrieves all restaurants.
func (h *RestaurantHandler) HandleGetRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.service.GetAllRestaurants()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(restaurants)
}

// HandleGetRestaurantByID retrieves a single restaurant by its ID.
func (h *RestaurantHandler) HandleGetRestaurantByID(c *fiber.Ctx) error {
	restaurant, err := h.service.GetRestaurantByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(restaurant)
}

// HandleCreateRestaurant creates a restaurant owned by the authenticated
// seller.
func (h *RestaurantHandler) HandleCreateRestaurant(c *fiber.Ctx) error {
	var restaurant models.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	actor := actorFromCtx(c)
	if actor.Role != models.RoleSeller && actor.Role != models.RoleAdmin {
		return errorResponse(c, fmt.Errorf("%w: only sellers create restaurants", apperrors.ErrUnauthorized))
	}
	if restaurant.OwnerID == "" {
		restaurant.OwnerID = actor.ID
	}
	if err := h.validate.Struct(restaurant); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	if err := h.service.CreateRestaurant(actor, &restaurant); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(restaurant)
}

// HandleUpdateRestaurant updates a restaurant the actor owns.
func (h *RestaurantHandler) HandleUpdateRestaurant(c *fiber.Ctx) error {
	var restaurant models.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	restaurant.ID = c.Params("id")

	if err := h.service.UpdateRestaurant(actorFromCtx(c), &restaurant); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(restaurant)
}
