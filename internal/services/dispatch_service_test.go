package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antar/internal/models"
	"antar/internal/repositories"
	"antar/internal/services"
)

// recordingNotifier captures pushed events for assertions. Safe for
// concurrent use.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

func (n *recordingNotifier) Notify(channelID, event string, payload interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Channel: channelID, Event: event, Payload: payload})
	return nil
}

func (n *recordingNotifier) byEvent(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Restaurant at the origin of the test grid; riders are placed by latitude
// offset (0.009 degrees is roughly 1 km).
const kmLat = 0.0089932

func seedDispatchFixture(t *testing.T) (*repositories.MockUserRepository, *repositories.MockRestaurantRepository, *models.Order) {
	t.Helper()

	restaurants := repositories.NewMockRestaurantRepository()
	require.NoError(t, restaurants.Create(&models.Restaurant{
		ID:       "rest-1",
		OwnerID:  "seller-1",
		Name:     "Warung Tester",
		Address:  "Jl. Tes 1",
		Location: &models.GeoPoint{Latitude: -6.2000, Longitude: 106.8456},
		IsActive: true,
	}))

	users := repositories.NewMockUserRepository()
	order := &models.Order{
		ID:              "order-1",
		OrderNumber:     "ANT_20250115_TEST0001",
		RestaurantID:    "rest-1",
		CustomerID:      "cust-1",
		DeliveryAddress: "Jl. Tujuan 9",
		Status:          models.StatusReady,
		TotalAmount:     120,
	}
	return users, restaurants, order
}

func addRider(t *testing.T, users *repositories.MockUserRepository, id string, kmFromRestaurant float64, available bool) {
	t.Helper()
	require.NoError(t, users.Create(&models.User{
		ID:          id,
		Username:    id,
		Email:       id + "@example.com",
		Password:    "secret",
		UserType:    models.RoleRider,
		IsAvailable: available,
		Location:    &models.GeoPoint{Latitude: -6.2000 + kmFromRestaurant*kmLat, Longitude: 106.8456},
	}))
}

func TestFindAndNotifyCandidates_FiltersByRadius(t *testing.T) {
	users, restaurants, order := seedDispatchFixture(t)
	addRider(t, users, "rider-near", 1.0, true)
	addRider(t, users, "rider-edge", 2.5, true)
	addRider(t, users, "rider-far", 4.5, true)

	notifier := &recordingNotifier{}
	dispatch := services.NewDispatchService(users, restaurants, notifier)

	count, err := dispatch.FindAndNotifyCandidates(order)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	offers := notifier.byEvent(services.EventDeliveryOffer)
	channels := []string{offers[0].Channel, offers[1].Channel}
	assert.ElementsMatch(t, []string{"rider-near", "rider-edge"}, channels)
}

func TestFindAndNotifyCandidates_SkipsUnavailableAndUnlocatedRiders(t *testing.T) {
	users, restaurants, order := seedDispatchFixture(t)
	addRider(t, users, "rider-busy", 1.0, false)
	require.NoError(t, users.Create(&models.User{
		ID:          "rider-unlocated",
		Username:    "rider-unlocated",
		Email:       "rider-unlocated@example.com",
		Password:    "secret",
		UserType:    models.RoleRider,
		IsAvailable: true,
	}))

	notifier := &recordingNotifier{}
	dispatch := services.NewDispatchService(users, restaurants, notifier)

	count, err := dispatch.FindAndNotifyCandidates(order)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, notifier.byEvent(services.EventDeliveryOffer))
}

func TestFindAndNotifyCandidates_ReinvocationReflectsCurrentAvailability(t *testing.T) {
	users, restaurants, order := seedDispatchFixture(t)
	addRider(t, users, "rider-1", 1.5, true)

	notifier := &recordingNotifier{}
	dispatch := services.NewDispatchService(users, restaurants, notifier)

	count, err := dispatch.FindAndNotifyCandidates(order)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	// The rider accepted another order in the meantime.
	require.NoError(t, users.SetAvailability("rider-1", false))

	count, err = dispatch.FindAndNotifyCandidates(order)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, notifier.byEvent(services.EventDeliveryOffer), 1)
}

func TestFindAndNotifyCandidates_OfferCarriesDistanceAndPickupInfo(t *testing.T) {
	users, restaurants, order := seedDispatchFixture(t)
	addRider(t, users, "rider-1", 1.0, true)

	notifier := &recordingNotifier{}
	dispatch := services.NewDispatchService(users, restaurants, notifier)

	_, err := dispatch.FindAndNotifyCandidates(order)
	require.NoError(t, err)

	offers := notifier.byEvent(services.EventDeliveryOffer)
	require.Len(t, offers, 1)
	payload, ok := offers[0].Payload.(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, order.ID, payload["order_id"])
	assert.Equal(t, "Warung Tester", payload["restaurant_name"])
	assert.InDelta(t, 1.0, payload["distance_km"].(float64), 0.05)
}
