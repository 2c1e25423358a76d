package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"antar/internal/apperrors"
	"antar/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return fmt.Errorf("%w: username %s already taken", apperrors.ErrValidation, user.Username)
		}
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrValidation, user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }, "username "+username)
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }, "email "+email)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return &user, nil
}

func (r *MockUserRepository) find(match func(models.User) bool, desc string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user with %s", apperrors.ErrNotFound, desc)
}

// FindAvailableRiders returns available riders with a known location.
func (r *MockUserRepository) FindAvailableRiders() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var riders []models.User
	for _, user := range r.users {
		if user.UserType == models.RoleRider && user.IsAvailable && user.Location != nil {
			riders = append(riders, user)
		}
	}
	return riders, nil
}

// SetAvailability flips a rider's availability flag.
func (r *MockUserRepository) SetAvailability(riderID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[riderID]
	if !ok {
		return fmt.Errorf("%w: rider %s", apperrors.ErrNotFound, riderID)
	}
	user.IsAvailable = available
	r.users[riderID] = user
	return nil
}

// UpdateLocation overwrites a rider's self-reported position.
func (r *MockUserRepository) UpdateLocation(riderID string, loc models.GeoPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[riderID]
	if !ok {
		return fmt.Errorf("%w: rider %s", apperrors.ErrNotFound, riderID)
	}
	user.Location = &loc
	r.users[riderID] = user
	return nil
}
