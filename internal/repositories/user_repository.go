package repositories

import "antar/internal/models"

// UserRepository defines the interface for user data access, including the
// rider availability and location records consulted by dispatch.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)

	// FindAvailableRiders returns riders with IsAvailable set and a known
	// location. Riders that never reported a position are excluded.
	FindAvailableRiders() ([]models.User, error)
	SetAvailability(riderID string, available bool) error
	UpdateLocation(riderID string, loc models.GeoPoint) error
}
