package pricing

import (
	"math"

	"antar/pkg/geo"
)

// Pricing constants. Currency-unit agnostic: the same numbers apply
// whatever unit the catalog prices are denominated in.
const (
	// Orders at or above this subtotal ship free.
	FreeDeliveryThreshold = 500.0
	// Flat fee applied below the free-delivery threshold.
	BaseDeliveryFee = 30.0
	// No distance surcharge within this radius of the restaurant.
	FreeRadiusKm = 2.0
	// Per-kilometer surcharge beyond the free radius, rounded to the
	// nearest whole currency unit.
	PerKmSurcharge = 10.0
	// Flat tax rate on the subtotal.
	TaxRate = 0.05
)

// DeliveryFee computes the delivery fee for an order.
//
// When either location is unknown (nil) only the base fee applies; missing
// coordinates are treated as "assume nearby" rather than an error.
func DeliveryFee(subtotal float64, customer, restaurant *geo.Point) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	fee := BaseDeliveryFee
	if customer != nil && restaurant != nil {
		distance := geo.DistanceKm(customer, restaurant)
		surcharge := math.Round((distance - FreeRadiusKm) * PerKmSurcharge)
		if surcharge > 0 {
			fee += surcharge
		}
	}
	return fee
}

// Tax computes the flat tax on a subtotal, rounded to 2 decimal places.
func Tax(subtotal float64) float64 {
	return Round2(subtotal * TaxRate)
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LiveETAMinutes estimates remaining travel time for a rider currently
// distanceKm away from the destination, moving at speedKmh. This is the
// re-enterable in-flight estimate, distinct from the one-time
// creation-time estimate.
func LiveETAMinutes(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		return 0
	}
	return int(math.Ceil(distanceKm / speedKmh * 60))
}
