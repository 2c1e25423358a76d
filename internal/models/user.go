package models

import "gorm.io/gorm"

// User represents any platform account: customer, seller, rider or admin.
// Rider-specific fields (availability, location) are zero-valued for the
// other roles.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	UserType Role   `json:"user_type" gorm:"type:varchar(10)" validate:"required,oneof=customer seller rider admin"`

	// Rider dispatch state. Location is the last self-reported position;
	// nil means the rider has never pinged and is skipped by matching.
	IsAvailable bool      `json:"is_available"`
	Location    *GeoPoint `json:"location,omitempty" gorm:"serializer:json"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
