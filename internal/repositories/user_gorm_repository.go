package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"antar/internal/apperrors"
	"antar/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user with username %s", apperrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// FindAvailableRiders retrieves available riders with a known location.
func (r *GORMUserRepository) FindAvailableRiders() ([]models.User, error) {
	var riders []models.User
	err := r.db.
		Where("user_type = ? AND is_available = ? AND location IS NOT NULL", models.RoleRider, true).
		Find(&riders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find available riders: %w", err)
	}
	return riders, nil
}

// SetAvailability flips a rider's availability flag.
func (r *GORMUserRepository) SetAvailability(riderID string, available bool) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", riderID).
		Updates(map[string]interface{}{"is_available": available, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to set availability for rider %s: %w", riderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: rider %s", apperrors.ErrNotFound, riderID)
	}
	return nil
}

// UpdateLocation overwrites a rider's self-reported position.
func (r *GORMUserRepository) UpdateLocation(riderID string, loc models.GeoPoint) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", riderID).
		Select("Location", "UpdatedAt").
		Updates(&models.User{Location: &loc})
	if res.Error != nil {
		return fmt.Errorf("failed to update location for rider %s: %w", riderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: rider %s", apperrors.ErrNotFound, riderID)
	}
	return nil
}
