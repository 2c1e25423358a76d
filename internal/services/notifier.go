package services

// Event names pushed over the notification transport. Channels are
// addressed by user id or restaurant id.
const (
	EventOrderCreated  = "order.created"
	EventOrderStatus   = "order.status_updated"
	EventOrderAssigned = "order.assigned"
	EventDeliveryOffer = "delivery.offer"
	EventRiderLocation = "rider.location"
)

// Notifier pushes an event to a channel. Delivery is fire-and-forget,
// best-effort, at-most-once: callers log failures and move on, and no
// notification outcome may affect the state change that triggered it.
type Notifier interface {
	Notify(channelID, event string, payload interface{}) error
}
