package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"antar/internal/apperrors"
	"antar/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
//
// The conditional updates are single UPDATE statements guarded by the
// order's current status (and rider column for assignment), so two writers
// racing on the same order cannot both succeed: the loser's WHERE clause
// matches zero rows.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetAll retrieves all orders from the database.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// ListByCustomer retrieves the orders placed by one customer.
func (r *GORMOrderRepository) ListByCustomer(customerID string) ([]models.Order, error) {
	return r.list("customer_id = ?", customerID)
}

// ListByRestaurant retrieves the orders addressed to one restaurant.
func (r *GORMOrderRepository) ListByRestaurant(restaurantID string) ([]models.Order, error) {
	return r.list("restaurant_id = ?", restaurantID)
}

// ListByRider retrieves the orders assigned to one rider.
func (r *GORMOrderRepository) ListByRider(riderID string) ([]models.Order, error) {
	return r.list("rider_id = ?", riderID)
}

func (r *GORMOrderRepository) list(query string, arg string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where(query, arg).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ApplyTransition atomically moves the order from -> to. The status guard
// in the WHERE clause doubles as the guard for the history append: the new
// history value was derived from the status we are comparing against, so a
// zero-row update means another writer got there first and nothing of ours
// is applied.
func (r *GORMOrderRepository) ApplyTransition(id string, from, to models.OrderStatus, entry models.StatusHistoryEntry, patch StatusPatch) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: order %s is %s, not %s", apperrors.ErrInvalidTransition, id, order.Status, from)
	}

	updated := models.Order{
		Status:        to,
		StatusHistory: append(order.StatusHistory, entry),
		UpdatedAt:     time.Now(),
	}
	fields := []string{"Status", "StatusHistory", "UpdatedAt"}
	if patch.PaymentStatus != nil {
		updated.PaymentStatus = *patch.PaymentStatus
		fields = append(fields, "PaymentStatus")
	}
	if patch.ActualDeliveryTime != nil {
		updated.ActualDeliveryTime = *patch.ActualDeliveryTime
		fields = append(fields, "ActualDeliveryTime")
	}
	if patch.RiderLocation != nil {
		updated.RiderLocation = patch.RiderLocation
		fields = append(fields, "RiderLocation")
	}

	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Select(fields).
		Updates(&updated)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to apply transition on order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %s changed concurrently", apperrors.ErrInvalidTransition, id)
	}
	return r.GetByID(id)
}

// AssignRider atomically claims the order for one rider. First successful
// writer wins; everyone else sees zero rows affected.
func (r *GORMOrderRepository) AssignRider(id, riderID string, entry models.StatusHistoryEntry) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.RiderID != "" {
		return nil, fmt.Errorf("%w: order %s already taken by rider %s", apperrors.ErrAlreadyAssigned, id, order.RiderID)
	}
	if order.Status != models.StatusReady {
		return nil, fmt.Errorf("%w: order %s is %s, not ready", apperrors.ErrInvalidTransition, id, order.Status)
	}

	updated := models.Order{
		RiderID:       riderID,
		Status:        models.StatusAssigned,
		StatusHistory: append(order.StatusHistory, entry),
		UpdatedAt:     time.Now(),
	}
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND (rider_id IS NULL OR rider_id = '')", id, models.StatusReady).
		Select("RiderID", "Status", "StatusHistory", "UpdatedAt").
		Updates(&updated)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to assign rider to order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race. Reload to report what actually happened.
		current, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if current.RiderID != "" {
			return nil, fmt.Errorf("%w: order %s already taken by rider %s", apperrors.ErrAlreadyAssigned, id, current.RiderID)
		}
		return nil, fmt.Errorf("%w: order %s is %s, not ready", apperrors.ErrInvalidTransition, id, current.Status)
	}
	return r.GetByID(id)
}

// UpdateRiderLocation overwrites the last known rider position.
func (r *GORMOrderRepository) UpdateRiderLocation(id string, loc models.RiderLocation) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Select("RiderLocation", "UpdatedAt").
		Updates(&models.Order{RiderLocation: &loc, UpdatedAt: time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to update rider location for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// SetRatings records the post-delivery scores while the order is delivered
// and unrated.
func (r *GORMOrderRepository) SetRatings(id string, riderRating, experienceRating int) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND rider_rating = 0", id, models.StatusDelivered).
		Select("RiderRating", "ExperienceRating", "UpdatedAt").
		Updates(&models.Order{RiderRating: riderRating, ExperienceRating: experienceRating, UpdatedAt: time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to set ratings for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("%w: order %s is not an unrated delivered order", apperrors.ErrInvalidTransition, id)
	}
	return nil
}
