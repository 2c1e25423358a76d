package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"antar/pkg/geo"
)

// GeoPoint is a latitude/longitude pair with an optional denormalized address.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Point converts to the geo package representation. A nil GeoPoint converts
// to a nil point, which geo.DistanceKm treats as "unknown, assume nearby".
func (p *GeoPoint) Point() *geo.Point {
	if p == nil {
		return nil
	}
	return &geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// OrderItem is an immutable snapshot of one order line. Prices are copied
// from the catalog at order-creation time; later catalog changes never
// affect existing orders.
type OrderItem struct {
	ProductID           string  `json:"product_id"`
	ProductName         string  `json:"product_name"`
	UnitPrice           float64 `json:"unit_price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	LineTotal           float64 `json:"line_total"`
}

// StatusHistoryEntry is one record of the append-only status audit trail.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Location  *GeoPoint   `json:"location,omitempty"`
}

// RiderLocation is the latest known rider position. It is overwritten on
// every ping, not historized.
type RiderLocation struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Point returns the geo representation of the rider position.
func (l *RiderLocation) Point() *geo.Point {
	if l == nil {
		return nil
	}
	return &geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Order is the central aggregate: one customer's placed request for items
// from one restaurant, tracked through delivery.
//
// Status, StatusHistory, RiderID and RiderLocation are written only through
// the repository's conditional updates; everything else is set once at
// creation (ratings and ActualDeliveryTime once after delivery).
type Order struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber  string `json:"order_number" gorm:"uniqueIndex;type:varchar(32)"`
	CustomerID   string `json:"customer_id" gorm:"index;type:varchar(36)"`
	RestaurantID string `json:"restaurant_id" gorm:"index;type:varchar(36)"`
	RiderID      string `json:"rider_id,omitempty" gorm:"index;type:varchar(36)"`

	Items []OrderItem `json:"items" gorm:"serializer:json"`

	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"delivery_fee"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`

	DeliveryAddress  string    `json:"delivery_address"`
	DeliveryLocation *GeoPoint `json:"delivery_location,omitempty" gorm:"serializer:json"`

	Status        OrderStatus          `json:"status" gorm:"type:varchar(16);index"`
	StatusHistory []StatusHistoryEntry `json:"status_history" gorm:"serializer:json"`

	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(10)"`

	// Minutes. The estimated fields are set once at creation; the actual
	// one is set once on delivery.
	EstimatedPreparationTime int `json:"estimated_preparation_time"`
	EstimatedDeliveryTime    int `json:"estimated_delivery_time"`
	ActualDeliveryTime       int `json:"actual_delivery_time,omitempty"`

	RiderLocation *RiderLocation `json:"rider_location,omitempty" gorm:"serializer:json"`

	// 1-5, zero until the customer rates the delivered order.
	RiderRating      int `json:"rider_rating,omitempty"`
	ExperienceRating int `json:"experience_rating,omitempty"`

	SpecialInstructions string `json:"special_instructions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrderNumber generates a human-readable, time-derived order number,
// e.g. ANT_20250831_1C9A4F2B.
func NewOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ANT_%s_%s", t.Format("20060102"), suffix)
}
