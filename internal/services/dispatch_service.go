package services

import (
	"fmt"
	"log"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/repositories"
	"antar/pkg/geo"
)

// MatchRadiusKm is how far from the restaurant a rider may be and still
// receive a delivery offer.
const MatchRadiusKm = 3.0

// DispatchService finds available riders near a restaurant and fans out
// delivery offers to them.
type DispatchService struct {
	userRepo       repositories.UserRepository
	restaurantRepo repositories.RestaurantRepository
	notifier       Notifier
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(userRepo repositories.UserRepository, restaurantRepo repositories.RestaurantRepository, notifier Notifier) *DispatchService {
	return &DispatchService{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		notifier:       notifier,
	}
}

// FindAndNotifyCandidates pushes a delivery offer to every available rider
// within MatchRadiusKm of the order's restaurant and returns how many were
// notified. The count is diagnostic only.
//
// Re-invoking for the same order is safe: filtering always reflects the
// riders' current availability, so a rider who accepted another order in
// the meantime drops out of the candidate set on the next wave.
func (s *DispatchService) FindAndNotifyCandidates(order *models.Order) (int, error) {
	restaurant, err := s.restaurantRepo.GetByID(order.RestaurantID)
	if err != nil {
		return 0, fmt.Errorf("%w: restaurant lookup for order %s: %v", apperrors.ErrUpstream, order.ID, err)
	}

	riders, err := s.userRepo.FindAvailableRiders()
	if err != nil {
		return 0, fmt.Errorf("%w: rider lookup for order %s: %v", apperrors.ErrUpstream, order.ID, err)
	}

	notified := 0
	for _, rider := range riders {
		distance := geo.DistanceKm(rider.Location.Point(), restaurant.Location.Point())
		if distance > MatchRadiusKm {
			continue
		}

		payload := map[string]interface{}{
			"order_id":         order.ID,
			"order_number":     order.OrderNumber,
			"restaurant_id":    restaurant.ID,
			"restaurant_name":  restaurant.Name,
			"pickup_address":   restaurant.Address,
			"pickup_location":  restaurant.Location,
			"delivery_address": order.DeliveryAddress,
			"total_amount":     order.TotalAmount,
			"distance_km":      distance,
		}
		if err := s.notifier.Notify(rider.ID, EventDeliveryOffer, payload); err != nil {
			log.Printf("Warning: failed to push delivery offer for order %s to rider %s: %v", order.ID, rider.ID, err)
			continue
		}
		notified++
	}
	return notified, nil
}
