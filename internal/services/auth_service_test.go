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

func newAuthService() (*services.AuthService, *repositories.MockUserRepository) {
	users := repositories.NewMockUserRepository()
	return services.NewAuthService(users, "unit-test-secret"), users
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	auth, users := newAuthService()

	user := &models.User{
		Username: "budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
		UserType: models.RoleCustomer,
	}
	require.NoError(t, auth.RegisterUser(user))

	stored, err := users.GetByUsername("budi")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", stored.Password)
	assert.NotEmpty(t, stored.ID)
}

func TestRegisterUser_RejectsDuplicates(t *testing.T) {
	auth, _ := newAuthService()

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123", UserType: models.RoleCustomer,
	}))

	err := auth.RegisterUser(&models.User{
		Username: "budi", Email: "other@example.com", Password: "rahasia123", UserType: models.RoleCustomer,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
	assert.Contains(t, err.Error(), "already taken")

	err = auth.RegisterUser(&models.User{
		Username: "other", Email: "budi@example.com", Password: "rahasia123", UserType: models.RoleCustomer,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoginUser_IssuesTokenWithRoleClaim(t *testing.T) {
	auth, _ := newAuthService()

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "kurir", Email: "kurir@example.com", Password: "rahasia123", UserType: models.RoleRider,
	}))

	token, err := auth.LoginUser("kurir", "rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kurir", claims["username"])
	assert.Equal(t, string(models.RoleRider), claims["user_type"])
	assert.NotEmpty(t, claims["user_id"])
}

func TestLoginUser_RejectsBadCredentials(t *testing.T) {
	auth, _ := newAuthService()

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123", UserType: models.RoleCustomer,
	}))

	_, err := auth.LoginUser("budi", "salah")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.LoginUser("nobody", "rahasia123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	auth, _ := newAuthService()

	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret must not validate.
	other := services.NewAuthService(repositories.NewMockUserRepository(), "another-secret")
	require.NoError(t, other.RegisterUser(&models.User{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123", UserType: models.RoleCustomer,
	}))
	foreign, err := other.LoginUser("budi", "rahasia123")
	require.NoError(t, err)

	_, err = auth.ValidateToken(foreign)
	assert.Error(t, err)
}
