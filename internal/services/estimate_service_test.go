package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"antar/internal/models"
	"antar/internal/services"
)

// catalogMock is a testify mock of repositories.ProductRepository.
type catalogMock struct {
	mock.Mock
}

func (m *catalogMock) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *catalogMock) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *catalogMock) GetByRestaurant(restaurantID string) ([]models.Product, error) {
	args := m.Called(restaurantID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *catalogMock) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *catalogMock) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *catalogMock) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestMaxPreparationTime_TakesTheSlowestItem(t *testing.T) {
	catalog := new(catalogMock)
	service := services.NewEstimateService(catalog)

	catalog.On("GetByID", "p1").Return(&models.Product{ID: "p1", PreparationTime: 20}, nil).Once()
	catalog.On("GetByID", "p2").Return(&models.Product{ID: "p2", PreparationTime: 35}, nil).Once()

	prep := service.MaxPreparationTime([]models.OrderItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	})

	assert.Equal(t, 35, prep)
	catalog.AssertExpectations(t)
}

func TestMaxPreparationTime_FlooredAtFifteenMinutes(t *testing.T) {
	catalog := new(catalogMock)
	service := services.NewEstimateService(catalog)

	catalog.On("GetByID", "p1").Return(&models.Product{ID: "p1", PreparationTime: 5}, nil).Once()

	prep := service.MaxPreparationTime([]models.OrderItem{{ProductID: "p1", Quantity: 1}})

	assert.Equal(t, services.MinPreparationMinutes, prep)
	catalog.AssertExpectations(t)
}

func TestMaxPreparationTime_FailsOpenOnLookupError(t *testing.T) {
	catalog := new(catalogMock)
	service := services.NewEstimateService(catalog)

	catalog.On("GetByID", "p1").Return(&models.Product{ID: "p1", PreparationTime: 60}, nil).Once()
	catalog.On("GetByID", "p2").Return(nil, fmt.Errorf("catalog unreachable")).Once()

	prep := service.MaxPreparationTime([]models.OrderItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
	})

	// One failed lookup degrades the whole estimate to the conservative
	// fallback; it never aborts the computation.
	assert.Equal(t, services.FallbackPreparationMinutes, prep)
	catalog.AssertExpectations(t)
}

func TestDeliveryEstimate_AddsTransitAllowance(t *testing.T) {
	service := services.NewEstimateService(new(catalogMock))
	assert.Equal(t, 55, service.DeliveryEstimate(25))
}

func TestLiveDeliveryETA(t *testing.T) {
	service := services.NewEstimateService(new(catalogMock))

	rider := &models.RiderLocation{Latitude: -6.2000, Longitude: 106.8456}
	dest := &models.GeoPoint{Latitude: -6.2000 + 0.044966, Longitude: 106.8456} // ~5 km north

	// 5 km at 25 km/h is 12 minutes, rounded up to 13.
	assert.Equal(t, 13, service.LiveDeliveryETA(rider, dest))

	// Unknown positions yield no estimate.
	assert.Equal(t, 0, service.LiveDeliveryETA(nil, dest))
	assert.Equal(t, 0, service.LiveDeliveryETA(rider, nil))
}
