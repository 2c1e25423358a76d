package models

import "gorm.io/gorm"

// Product represents one menu item offered by a restaurant.
type Product struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	RestaurantID string  `json:"restaurant_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	// Minutes the kitchen needs for this item; feeds the order's
	// preparation-time estimate.
	PreparationTime int  `json:"preparation_time" validate:"gte=0"`
	IsAvailable     bool `json:"is_available"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
