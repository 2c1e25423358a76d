package services

import (
	"fmt"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/repositories"
)

// RiderService handles the rider-side availability and location records
// consulted by dispatch.
type RiderService struct {
	userRepo repositories.UserRepository
}

// NewRiderService creates a new RiderService.
func NewRiderService(userRepo repositories.UserRepository) *RiderService {
	return &RiderService{
		userRepo: userRepo,
	}
}

// SetAvailability flips whether the rider is accepting delivery offers.
func (s *RiderService) SetAvailability(riderID string, available bool) error {
	if err := s.requireRider(riderID); err != nil {
		return err
	}
	return s.userRepo.SetAvailability(riderID, available)
}

// UpdateLocation records the rider's self-reported position.
func (s *RiderService) UpdateLocation(riderID string, loc models.GeoPoint) error {
	if err := s.requireRider(riderID); err != nil {
		return err
	}
	return s.userRepo.UpdateLocation(riderID, loc)
}

func (s *RiderService) requireRider(riderID string) error {
	user, err := s.userRepo.GetByID(riderID)
	if err != nil {
		return err
	}
	if user.UserType != models.RoleRider {
		return fmt.Errorf("%w: user %s is not a rider", apperrors.ErrUnauthorized, riderID)
	}
	return nil
}
