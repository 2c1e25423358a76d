package services

import (
	"fmt"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/repositories"
)

// ProductService handles business logic related to the menu catalog.
// Writes are restricted to the seller owning the product's restaurant.
type ProductService struct {
	repo           repositories.ProductRepository
	restaurantRepo repositories.RestaurantRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, restaurantRepo repositories.RestaurantRepository) *ProductService {
	return &ProductService{
		repo:           repo,
		restaurantRepo: restaurantRepo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetMenu retrieves the products of one restaurant.
func (s *ProductService) GetMenu(restaurantID string) ([]models.Product, error) {
	return s.repo.GetByRestaurant(restaurantID)
}

// CreateProduct creates a new product under a restaurant the actor owns.
func (s *ProductService) CreateProduct(actor Actor, product *models.Product) error {
	if err := s.requireOwnership(actor, product.RestaurantID); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(actor Actor, product *models.Product) error {
	if err := s.requireOwnership(actor, product.RestaurantID); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(actor Actor, id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(actor, product.RestaurantID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ProductService) requireOwnership(actor Actor, restaurantID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != actor.ID {
		return fmt.Errorf("%w: seller %s does not own restaurant %s", apperrors.ErrUnauthorized, actor.ID, restaurantID)
	}
	return nil
}
