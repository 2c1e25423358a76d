package repositories

import (
	"antar/internal/models"
)

// StatusPatch carries the extra fields a specific transition writes along
// with the status change. Nil fields are left untouched.
type StatusPatch struct {
	PaymentStatus      *models.PaymentStatus
	ActualDeliveryTime *int
	RiderLocation      *models.RiderLocation
}

// OrderRepository defines the interface for order data access.
//
// ApplyTransition and AssignRider are conditional updates: they atomically
// check the order's current state and apply the write, so concurrent
// writers on the same order cannot interleave. Losing writers get a
// conflict error, never a partial write.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	ListByCustomer(customerID string) ([]models.Order, error)
	ListByRestaurant(restaurantID string) ([]models.Order, error)
	ListByRider(riderID string) ([]models.Order, error)

	// ApplyTransition moves the order from -> to, appends the history
	// entry and applies the patch, only if the order's status still
	// equals from. Returns apperrors.ErrInvalidTransition when the
	// status moved underneath the caller.
	ApplyTransition(id string, from, to models.OrderStatus, entry models.StatusHistoryEntry, patch StatusPatch) (*models.Order, error)

	// AssignRider sets the rider and moves the order to assigned, only
	// if the order is still ready and unassigned. Exactly one of any
	// set of concurrent callers succeeds; the rest get
	// apperrors.ErrAlreadyAssigned.
	AssignRider(id, riderID string, entry models.StatusHistoryEntry) (*models.Order, error)

	// UpdateRiderLocation overwrites the last known rider position.
	// Last write wins; positions are not historized.
	UpdateRiderLocation(id string, loc models.RiderLocation) error

	// SetRatings records the post-delivery scores, only while the order
	// is delivered and unrated.
	SetRatings(id string, riderRating, experienceRating int) error
}
