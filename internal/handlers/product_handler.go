package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/services"
)

// ProductHandler handles HTTP requests for the menu catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products, optionally filtered by
// restaurant via the restaurant_id query parameter.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		products, err := h.service.GetMenu(restaurantID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(products)
	}

	products, err := h.service.GetAllProducts()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product for a restaurant the
// authenticated seller owns.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	if err := h.validate.Struct(product); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	if err := h.service.CreateProduct(actorFromCtx(c), &product); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	if err := h.service.UpdateProduct(actorFromCtx(c), &product); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(actorFromCtx(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}
