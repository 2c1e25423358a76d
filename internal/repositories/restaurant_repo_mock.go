package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"antar/internal/apperrors"
	"antar/internal/models"
)

// MockRestaurantRepository is an in-memory implementation of RestaurantRepository.
type MockRestaurantRepository struct {
	restaurants map[string]models.Restaurant
	mu          sync.RWMutex
}

// NewMockRestaurantRepository creates a new instance of MockRestaurantRepository.
func NewMockRestaurantRepository() *MockRestaurantRepository {
	return &MockRestaurantRepository{
		restaurants: make(map[string]models.Restaurant),
	}
}

// GetAll returns all restaurants.
func (r *MockRestaurantRepository) GetAll() ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Restaurant, 0, len(r.restaurants))
	for _, rest := range r.restaurants {
		list = append(list, rest)
	}
	return list, nil
}

// GetByID returns a restaurant by its ID.
func (r *MockRestaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rest, ok := r.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant %s", apperrors.ErrNotFound, id)
	}
	return &rest, nil
}

// Create adds a new restaurant.
func (r *MockRestaurantRepository) Create(restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	r.restaurants[restaurant.ID] = *restaurant
	return nil
}

// Update modifies an existing restaurant.
func (r *MockRestaurantRepository) Update(restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.restaurants[restaurant.ID]
	if !ok {
		return fmt.Errorf("%w: restaurant %s", apperrors.ErrNotFound, restaurant.ID)
	}
	r.restaurants[restaurant.ID] = *restaurant
	return nil
}
