package services

import (
	"fmt"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/repositories"
)

// RestaurantService handles business logic related to restaurants.
type RestaurantService struct {
	repo repositories.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(repo repositories.RestaurantRepository) *RestaurantService {
	return &RestaurantService{
		repo: repo,
	}
}

// GetAllRestaurants retrieves all restaurants.
func (s *RestaurantService) GetAllRestaurants() ([]models.Restaurant, error) {
	return s.repo.GetAll()
}

// GetRestaurantByID retrieves a single restaurant by its ID.
func (s *RestaurantService) GetRestaurantByID(id string) (*models.Restaurant, error) {
	return s.repo.GetByID(id)
}

// CreateRestaurant creates a restaurant owned by the acting seller.
func (s *RestaurantService) CreateRestaurant(actor Actor, restaurant *models.Restaurant) error {
	if actor.Role != models.RoleAdmin {
		restaurant.OwnerID = actor.ID
	}
	return s.repo.Create(restaurant)
}

// UpdateRestaurant updates a restaurant the actor owns.
func (s *RestaurantService) UpdateRestaurant(actor Actor, restaurant *models.Restaurant) error {
	existing, err := s.repo.GetByID(restaurant.ID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && existing.OwnerID != actor.ID {
		return fmt.Errorf("%w: seller %s does not own restaurant %s", apperrors.ErrUnauthorized, actor.ID, restaurant.ID)
	}
	restaurant.OwnerID = existing.OwnerID
	return s.repo.Update(restaurant)
}
