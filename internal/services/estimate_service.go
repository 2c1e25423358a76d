package services

import (
	"log"

	"antar/internal/models"
	"antar/internal/pricing"
	"antar/internal/repositories"
	"antar/pkg/geo"
)

// Timing constants, all in minutes unless noted.
const (
	// No kitchen is assumed to be faster than this.
	MinPreparationMinutes = 15
	// Conservative substitute used when the catalog cannot be consulted.
	FallbackPreparationMinutes = 30
	// Flat transit allowance added to the preparation time at creation.
	TransitAllowanceMinutes = 30
	// Assumed rider speed for in-flight ETA recomputation (km/h).
	AssumedRiderSpeedKmh = 25.0
)

// EstimateService derives preparation-time and delivery-time estimates for
// an order from the product catalog.
type EstimateService struct {
	productRepo repositories.ProductRepository
}

// NewEstimateService creates a new EstimateService.
func NewEstimateService(productRepo repositories.ProductRepository) *EstimateService {
	return &EstimateService{
		productRepo: productRepo,
	}
}

// MaxPreparationTime returns the longest preparation time across the order
// lines, floored at MinPreparationMinutes.
//
// If any catalog lookup fails, the whole computation fails open to
// FallbackPreparationMinutes instead of aborting the placement: a slightly
// pessimistic estimate beats a failed order.
func (s *EstimateService) MaxPreparationTime(items []models.OrderItem) int {
	maxPrep := MinPreparationMinutes
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			log.Printf("Warning: preparation-time lookup failed for product %s, using fallback: %v", item.ProductID, err)
			return FallbackPreparationMinutes
		}
		if product.PreparationTime > maxPrep {
			maxPrep = product.PreparationTime
		}
	}
	return maxPrep
}

// DeliveryEstimate converts a preparation time into the one-time
// creation-time delivery estimate.
func (s *EstimateService) DeliveryEstimate(preparationMinutes int) int {
	return preparationMinutes + TransitAllowanceMinutes
}

// LiveDeliveryETA recomputes the remaining minutes from the rider's current
// position to the delivery destination. Returns 0 when either position is
// unknown.
func (s *EstimateService) LiveDeliveryETA(rider *models.RiderLocation, destination *models.GeoPoint) int {
	if rider == nil || destination == nil {
		return 0
	}
	distance := geo.DistanceKm(rider.Point(), destination.Point())
	return pricing.LiveETAMinutes(distance, AssumedRiderSpeedKmh)
}
