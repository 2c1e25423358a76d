package repositories

import (
	"antar/internal/models"
)

// RestaurantRepository defines the interface for restaurant data access.
type RestaurantRepository interface {
	GetAll() ([]models.Restaurant, error)
	GetByID(id string) (*models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
}
