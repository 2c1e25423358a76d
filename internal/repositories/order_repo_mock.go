package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"antar/internal/apperrors"
	"antar/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// The mutex makes every conditional update a single critical section, which
// gives the same per-order atomicity the SQL implementation gets from
// conditional UPDATE statements.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	return cloneOrder(order), nil
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, *cloneOrder(order))
	}
	return orderList, nil
}

// ListByCustomer returns the orders placed by one customer.
func (r *MockOrderRepository) ListByCustomer(customerID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.CustomerID == customerID })
}

// ListByRestaurant returns the orders addressed to one restaurant.
func (r *MockOrderRepository) ListByRestaurant(restaurantID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.RestaurantID == restaurantID })
}

// ListByRider returns the orders assigned to one rider.
func (r *MockOrderRepository) ListByRider(riderID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.RiderID == riderID })
}

func (r *MockOrderRepository) filter(keep func(models.Order) bool) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if keep(order) {
			orderList = append(orderList, *cloneOrder(order))
		}
	}
	return orderList, nil
}

// ApplyTransition atomically moves the order from -> to.
func (r *MockOrderRepository) ApplyTransition(id string, from, to models.OrderStatus, entry models.StatusHistoryEntry, patch StatusPatch) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: order %s is %s, not %s", apperrors.ErrInvalidTransition, id, order.Status, from)
	}

	order.Status = to
	order.StatusHistory = append(order.StatusHistory, entry)
	if patch.PaymentStatus != nil {
		order.PaymentStatus = *patch.PaymentStatus
	}
	if patch.ActualDeliveryTime != nil {
		order.ActualDeliveryTime = *patch.ActualDeliveryTime
	}
	if patch.RiderLocation != nil {
		order.RiderLocation = patch.RiderLocation
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return cloneOrder(order), nil
}

// AssignRider atomically claims the order for one rider.
func (r *MockOrderRepository) AssignRider(id, riderID string, entry models.StatusHistoryEntry) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	if order.RiderID != "" {
		return nil, fmt.Errorf("%w: order %s already taken by rider %s", apperrors.ErrAlreadyAssigned, id, order.RiderID)
	}
	if order.Status != models.StatusReady {
		return nil, fmt.Errorf("%w: order %s is %s, not ready", apperrors.ErrInvalidTransition, id, order.Status)
	}

	order.RiderID = riderID
	order.Status = models.StatusAssigned
	order.StatusHistory = append(order.StatusHistory, entry)
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return cloneOrder(order), nil
}

// UpdateRiderLocation overwrites the last known rider position.
func (r *MockOrderRepository) UpdateRiderLocation(id string, loc models.RiderLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	order.RiderLocation = &loc
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// SetRatings records the post-delivery scores.
func (r *MockOrderRepository) SetRatings(id string, riderRating, experienceRating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	if order.Status != models.StatusDelivered {
		return fmt.Errorf("%w: order %s is %s, ratings require delivered", apperrors.ErrInvalidTransition, id, order.Status)
	}
	order.RiderRating = riderRating
	order.ExperienceRating = experienceRating
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// cloneOrder deep-copies the slices so callers cannot mutate stored state,
// in particular the append-only status history.
func cloneOrder(order models.Order) *models.Order {
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items

	history := make([]models.StatusHistoryEntry, len(order.StatusHistory))
	copy(history, order.StatusHistory)
	order.StatusHistory = history

	if order.RiderLocation != nil {
		loc := *order.RiderLocation
		order.RiderLocation = &loc
	}
	if order.DeliveryLocation != nil {
		loc := *order.DeliveryLocation
		order.DeliveryLocation = &loc
	}
	return &order
}
