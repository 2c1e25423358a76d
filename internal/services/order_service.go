package services

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/pricing"
	"antar/internal/repositories"
)

// Actor identifies who is driving an order operation.
type Actor struct {
	ID   string
	Role models.Role
}

// PlaceOrderItem is one requested order line. Prices are deliberately
// absent: they are always recomputed from the catalog, never accepted from
// the request.
type PlaceOrderItem struct {
	ProductID           string `json:"product_id" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,min=1"`
	SpecialInstructions string `json:"special_instructions" validate:"omitempty,max=255"`
}

// PlaceOrderRequest is the validated input for placing an order.
type PlaceOrderRequest struct {
	CustomerID          string               `json:"-"`
	RestaurantID        string               `json:"restaurant_id" validate:"required"`
	Items               []PlaceOrderItem     `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress     string               `json:"delivery_address" validate:"required,max=255"`
	DeliveryLocation    *models.GeoPoint     `json:"delivery_location"`
	PaymentMethod       models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash_on_delivery card wallet"`
	SpecialInstructions string               `json:"special_instructions" validate:"omitempty,max=500"`
}

// OrderService orchestrates the order lifecycle: placement, status
// transitions, rider assignment and post-delivery bookkeeping. It is the
// only writer of order status, history and rider fields, always through
// the repository's conditional updates.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	productRepo    repositories.ProductRepository
	restaurantRepo repositories.RestaurantRepository
	userRepo       repositories.UserRepository
	estimates      *EstimateService
	dispatch       *DispatchService
	notifier       Notifier
	validate       *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	restaurantRepo repositories.RestaurantRepository,
	userRepo repositories.UserRepository,
	estimates *EstimateService,
	dispatch *DispatchService,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		estimates:      estimates,
		dispatch:       dispatch,
		notifier:       notifier,
		validate:       validator.New(),
	}
}

// PlaceOrder validates a placement request, prices it from the catalog,
// persists the order in pending status and notifies the restaurant.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidItems, err)
	}

	customer, err := s.userRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.FullName == "" && customer.Phone == "" {
		return nil, fmt.Errorf("%w: customer %s has no name or phone on file", apperrors.ErrMissingContact, customer.ID)
	}

	restaurant, err := s.restaurantRepo.GetByID(req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, fmt.Errorf("%w: restaurant %s is not accepting orders", apperrors.ErrRestaurantUnavailable, restaurant.ID)
	}

	// Build immutable line snapshots. Every price comes from the catalog;
	// client-supplied prices are never trusted.
	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrProductUnavailable, line.ProductID)
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("%w: product %s is currently unavailable", apperrors.ErrProductUnavailable, product.ID)
		}
		if product.RestaurantID != restaurant.ID {
			return nil, fmt.Errorf("%w: product %s does not belong to restaurant %s", apperrors.ErrProductUnavailable, product.ID, restaurant.ID)
		}

		lineTotal := pricing.Round2(product.Price * float64(line.Quantity))
		items = append(items, models.OrderItem{
			ProductID:           product.ID,
			ProductName:         product.Name,
			UnitPrice:           product.Price,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
			LineTotal:           lineTotal,
		})
		subtotal += lineTotal
	}
	subtotal = pricing.Round2(subtotal)

	deliveryFee := pricing.DeliveryFee(subtotal, req.DeliveryLocation.Point(), restaurant.Location.Point())
	tax := pricing.Tax(subtotal)
	discount := 0.0
	total := pricing.Round2(subtotal + deliveryFee + tax - discount)

	prepTime := s.estimates.MaxPreparationTime(items)
	now := time.Now()

	order := &models.Order{
		ID:               uuid.New().String(),
		OrderNumber:      models.NewOrderNumber(now),
		CustomerID:       customer.ID,
		RestaurantID:     restaurant.ID,
		Items:            items,
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		TaxAmount:        tax,
		DiscountAmount:   discount,
		TotalAmount:      total,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryLocation: req.DeliveryLocation,
		Status:           models.StatusPending,
		StatusHistory: []models.StatusHistoryEntry{
			{Status: models.StatusPending, Note: "Order placed", Timestamp: now},
		},
		PaymentMethod:            req.PaymentMethod,
		PaymentStatus:            models.PaymentPending,
		EstimatedPreparationTime: prepTime,
		EstimatedDeliveryTime:    s.estimates.DeliveryEstimate(prepTime),
		SpecialInstructions:      req.SpecialInstructions,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.push(restaurant.ID, EventOrderCreated, map[string]interface{}{
		"order_id":      order.ID,
		"order_number":  order.OrderNumber,
		"customer_name": customer.FullName,
		"total_amount":  order.TotalAmount,
		"items":         order.Items,
	})

	return order, nil
}

// Transition moves an order to the requested status on behalf of an actor.
// The status write, history append and transition-specific patch are
// applied as one conditional update; side effects (dispatch, availability
// bookkeeping, notifications) run only after the write committed.
func (s *OrderService) Transition(orderID string, target models.OrderStatus, actor Actor, note string, location *models.GeoPoint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	// Assignment is the contended edge; it only happens through
	// AcceptOrder's atomic claim.
	if target == models.StatusAssigned {
		return nil, fmt.Errorf("%w: assignment must go through order acceptance", apperrors.ErrInvalidTransition)
	}
	if !models.CanTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, target)
	}
	if err := s.authorizeTransition(order, target, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := models.StatusHistoryEntry{
		Status:    target,
		Note:      note,
		Timestamp: now,
		Location:  location,
	}

	var patch repositories.StatusPatch
	switch target {
	case models.StatusPickedUp, models.StatusOnTheWay:
		if location != nil {
			patch.RiderLocation = &models.RiderLocation{
				Latitude:  location.Latitude,
				Longitude: location.Longitude,
				UpdatedAt: now,
			}
		}
	case models.StatusDelivered:
		if order.PaymentMethod == models.PaymentCashOnDelivery {
			paid := models.PaymentPaid
			patch.PaymentStatus = &paid
		}
		actual := int(now.Sub(order.CreatedAt).Minutes())
		patch.ActualDeliveryTime = &actual
	}

	updated, err := s.orderRepo.ApplyTransition(order.ID, order.Status, target, entry, patch)
	if err != nil {
		return nil, err
	}

	s.runTransitionEffects(updated, note)
	return updated, nil
}

// authorizeTransition enforces the role matrix plus the per-order checks
// that go beyond it.
func (s *OrderService) authorizeTransition(order *models.Order, target models.OrderStatus, actor Actor) error {
	if !models.RoleMaySet(actor.Role, target) {
		return fmt.Errorf("%w: role %s may not set status %s", apperrors.ErrUnauthorized, actor.Role, target)
	}

	switch actor.Role {
	case models.RoleSeller:
		restaurant, err := s.restaurantRepo.GetByID(order.RestaurantID)
		if err != nil {
			return err
		}
		if restaurant.OwnerID != actor.ID {
			return fmt.Errorf("%w: seller %s does not own restaurant %s", apperrors.ErrUnauthorized, actor.ID, order.RestaurantID)
		}
	case models.RoleRider:
		if order.RiderID == "" || order.RiderID != actor.ID {
			return fmt.Errorf("%w: order %s is not assigned to rider %s", apperrors.ErrUnauthorized, order.ID, actor.ID)
		}
	case models.RoleCustomer:
		if order.CustomerID != actor.ID {
			return fmt.Errorf("%w: order %s does not belong to customer %s", apperrors.ErrUnauthorized, order.ID, actor.ID)
		}
		// Customers may only cancel before the restaurant has confirmed.
		if order.Status != models.StatusPending {
			return fmt.Errorf("%w: customers may cancel only pending orders", apperrors.ErrUnauthorized)
		}
	}
	return nil
}

// runTransitionEffects fires the side effects bound to a committed
// transition. All of them are best-effort: a failure here is logged and
// never unwinds the transition.
func (s *OrderService) runTransitionEffects(order *models.Order, note string) {
	switch order.Status {
	case models.StatusReady:
		count, err := s.dispatch.FindAndNotifyCandidates(order)
		if err != nil {
			log.Printf("Warning: dispatch for order %s failed: %v", order.ID, err)
		} else {
			log.Printf("Dispatch for order %s notified %d rider(s)", order.ID, count)
		}
	case models.StatusDelivered, models.StatusCancelled:
		// Acceptance marked the rider busy; both ways the delivery can end
		// must hand them back to dispatch.
		if order.RiderID != "" {
			if err := s.userRepo.SetAvailability(order.RiderID, true); err != nil {
				log.Printf("Warning: failed to free rider %s after order %s became %s: %v", order.RiderID, order.ID, order.Status, err)
			}
		}
	}

	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"note":         note,
	}
	s.push(order.CustomerID, EventOrderStatus, payload)
	s.push(order.RestaurantID, EventOrderStatus, payload)
	if order.RiderID != "" && order.Status == models.StatusCancelled {
		s.push(order.RiderID, EventOrderStatus, payload)
	}
}

// AcceptOrder claims a ready order for a rider. When several riders race
// for the same order, the repository's conditional update lets exactly one
// through; the rest get ErrAlreadyAssigned and none of their side effects
// run.
func (s *OrderService) AcceptOrder(orderID, riderID string) (*models.Order, error) {
	rider, err := s.userRepo.GetByID(riderID)
	if err != nil {
		return nil, err
	}
	if rider.UserType != models.RoleRider {
		return nil, fmt.Errorf("%w: user %s is not a rider", apperrors.ErrUnauthorized, riderID)
	}

	entry := models.StatusHistoryEntry{
		Status:    models.StatusAssigned,
		Note:      fmt.Sprintf("Rider %s accepted the delivery", rider.Username),
		Timestamp: time.Now(),
	}
	order, err := s.orderRepo.AssignRider(orderID, riderID, entry)
	if err != nil {
		return nil, err
	}

	// Winner-only side effects.
	if err := s.userRepo.SetAvailability(riderID, false); err != nil {
		log.Printf("Warning: failed to mark rider %s busy for order %s: %v", riderID, orderID, err)
	}
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"rider_id":     riderID,
		"rider_name":   rider.FullName,
	}
	s.push(order.CustomerID, EventOrderAssigned, payload)
	s.push(order.RestaurantID, EventOrderAssigned, payload)

	return order, nil
}

// UpdateRiderLocation records a rider position ping for an active delivery
// and returns the recomputed live ETA in minutes.
func (s *OrderService) UpdateRiderLocation(orderID, riderID string, loc models.GeoPoint) (int, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return 0, err
	}
	if order.RiderID != riderID {
		return 0, fmt.Errorf("%w: order %s is not assigned to rider %s", apperrors.ErrUnauthorized, orderID, riderID)
	}
	switch order.Status {
	case models.StatusAssigned, models.StatusPickedUp, models.StatusOnTheWay:
	default:
		return 0, fmt.Errorf("%w: order %s is not in active delivery", apperrors.ErrInvalidTransition, orderID)
	}

	position := models.RiderLocation{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		UpdatedAt: time.Now(),
	}
	if err := s.orderRepo.UpdateRiderLocation(orderID, position); err != nil {
		return 0, err
	}

	eta := s.estimates.LiveDeliveryETA(&position, order.DeliveryLocation)
	s.push(order.CustomerID, EventRiderLocation, map[string]interface{}{
		"order_id":    order.ID,
		"latitude":    loc.Latitude,
		"longitude":   loc.Longitude,
		"eta_minutes": eta,
	})
	return eta, nil
}

// RateOrder records the customer's post-delivery scores for the rider and
// the overall experience.
func (s *OrderService) RateOrder(orderID string, actor Actor, riderRating, experienceRating int) error {
	if riderRating < 1 || riderRating > 5 || experienceRating < 1 || experienceRating > 5 {
		return fmt.Errorf("%w: ratings must be between 1 and 5", apperrors.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleCustomer || order.CustomerID != actor.ID {
		return fmt.Errorf("%w: only the ordering customer may rate order %s", apperrors.ErrUnauthorized, orderID)
	}
	if order.Status != models.StatusDelivered {
		return fmt.Errorf("%w: order %s has not been delivered", apperrors.ErrInvalidTransition, orderID)
	}

	return s.orderRepo.SetRatings(orderID, riderRating, experienceRating)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListOrders returns the orders visible to the actor: admins see all,
// everyone else sees their own side of the marketplace.
func (s *OrderService) ListOrders(actor Actor) ([]models.Order, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.orderRepo.GetAll()
	case models.RoleSeller:
		restaurants, err := s.restaurantRepo.GetAll()
		if err != nil {
			return nil, err
		}
		var orders []models.Order
		for _, restaurant := range restaurants {
			if restaurant.OwnerID != actor.ID {
				continue
			}
			batch, err := s.orderRepo.ListByRestaurant(restaurant.ID)
			if err != nil {
				return nil, err
			}
			orders = append(orders, batch...)
		}
		return orders, nil
	case models.RoleRider:
		return s.orderRepo.ListByRider(actor.ID)
	default:
		return s.orderRepo.ListByCustomer(actor.ID)
	}
}

// push sends a notification and logs failures. Notification delivery never
// influences the outcome of the operation that produced it.
func (s *OrderService) push(channelID, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(channelID, event, payload); err != nil {
		log.Printf("Warning: failed to push %s to channel %s: %v", event, channelID, err)
	}
}
