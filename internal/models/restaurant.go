package models

import "gorm.io/gorm"

// Restaurant represents a seller's storefront. Its location is the center
// for delivery-fee distance and rider-matching radius computations.
type Restaurant struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID  string    `json:"owner_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name     string    `json:"name" validate:"required,min=2,max=100"`
	Address  string    `json:"address" validate:"required,max=255"`
	Phone    string    `json:"phone" validate:"omitempty,max=20"`
	Location *GeoPoint `json:"location,omitempty" gorm:"serializer:json"`
	IsActive bool      `json:"is_active"`
	gorm.Model
}
