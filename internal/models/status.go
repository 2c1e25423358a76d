package models

import "fmt"

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusAssigned  OrderStatus = "assigned"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusRejected  OrderStatus = "rejected"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCard           PaymentMethod = "card"
	PaymentWallet         PaymentMethod = "wallet"
)

// PaymentStatus tracks whether the order has been paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Role identifies which kind of actor is driving a state change.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleRider    Role = "rider"
	RoleAdmin    Role = "admin"
)

// allowedNext is the adjacency map of legal status transitions. Self-loops
// are deliberately absent: re-submitting the current status is rejected.
var allowedNext = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusRejected, StatusCancelled},
	StatusPreparing: {StatusReady, StatusRejected, StatusCancelled},
	StatusReady:     {StatusAssigned, StatusRejected, StatusCancelled},
	StatusAssigned:  {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusOnTheWay},
	StatusOnTheWay:  {StatusDelivered},
	StatusDelivered: {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// roleEdges lists the target statuses each role may set. Assignment goes
// through the dedicated accept flow, so no role may request "assigned"
// via a plain transition.
var roleEdges = map[Role][]OrderStatus{
	RoleCustomer: {StatusCancelled},
	RoleSeller:   {StatusConfirmed, StatusPreparing, StatusReady, StatusRejected},
	RoleRider:    {StatusPickedUp, StatusOnTheWay, StatusDelivered},
	RoleAdmin:    {StatusCancelled},
}

// ParseOrderStatus validates a raw status string against the enumeration.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := allowedNext[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RoleMaySet reports whether the role is ever allowed to move an order
// into the target status. Per-order checks (rider ownership, customer
// cancellation window) are enforced by the order service on top of this.
func RoleMaySet(role Role, target OrderStatus) bool {
	for _, allowed := range roleEdges[role] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(allowedNext[s]) == 0
}
