package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antar/internal/apperrors"
	"antar/internal/models"
	"antar/internal/repositories"
	"antar/internal/services"
)

func newProductService(t *testing.T) (*services.ProductService, *repositories.MockProductRepository) {
	t.Helper()
	products := repositories.NewMockProductRepository()
	restaurants := repositories.NewMockRestaurantRepository()
	require.NoError(t, restaurants.Create(&models.Restaurant{
		ID: "rest-1", OwnerID: "seller-1", Name: "Warung Nusantara", Address: "Jl. Merdeka 17", IsActive: true,
	}))
	return services.NewProductService(products, restaurants), products
}

func TestCreateProduct_RequiresRestaurantOwnership(t *testing.T) {
	svc, products := newProductService(t)
	owner := services.Actor{ID: "seller-1", Role: models.RoleSeller}
	stranger := services.Actor{ID: "seller-2", Role: models.RoleSeller}

	product := &models.Product{RestaurantID: "rest-1", Name: "Nasi Campur", Price: 150, PreparationTime: 20, IsAvailable: true}
	require.NoError(t, svc.CreateProduct(owner, product))
	assert.NotEmpty(t, product.ID)

	err := svc.CreateProduct(stranger, &models.Product{RestaurantID: "rest-1", Name: "Sate", Price: 80})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	all, err := products.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateProduct_AdminBypassesOwnership(t *testing.T) {
	svc, _ := newProductService(t)
	owner := services.Actor{ID: "seller-1", Role: models.RoleSeller}
	admin := services.Actor{ID: "admin-1", Role: models.RoleAdmin}

	product := &models.Product{RestaurantID: "rest-1", Name: "Nasi Campur", Price: 150, IsAvailable: true}
	require.NoError(t, svc.CreateProduct(owner, product))

	product.Price = 160
	require.NoError(t, svc.UpdateProduct(admin, product))

	stored, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 160.0, stored.Price)
}

func TestDeleteProduct_ChecksOwnershipOfStoredProduct(t *testing.T) {
	svc, _ := newProductService(t)
	owner := services.Actor{ID: "seller-1", Role: models.RoleSeller}
	stranger := services.Actor{ID: "seller-2", Role: models.RoleSeller}

	product := &models.Product{RestaurantID: "rest-1", Name: "Nasi Campur", Price: 150, IsAvailable: true}
	require.NoError(t, svc.CreateProduct(owner, product))

	err := svc.DeleteProduct(stranger, product.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, svc.DeleteProduct(owner, product.ID))
	_, err = svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetMenu_FiltersByRestaurant(t *testing.T) {
	svc, products := newProductService(t)

	require.NoError(t, products.Create(&models.Product{ID: "p-1", RestaurantID: "rest-1", Name: "Nasi Campur", Price: 150, IsAvailable: true}))
	require.NoError(t, products.Create(&models.Product{ID: "p-2", RestaurantID: "rest-2", Name: "Pizza", Price: 90, IsAvailable: true}))

	menu, err := svc.GetMenu("rest-1")
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "p-1", menu[0].ID)
}
