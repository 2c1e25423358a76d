package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Stable error kinds shared by all handlers and services. Client apps key
// their UI off the code string returned by Code, never off the message text.
var (
	ErrValidation            = errors.New("validation_failed")
	ErrInvalidItems          = errors.New("invalid_items")
	ErrMissingContact        = errors.New("missing_contact")
	ErrNotFound              = errors.New("not_found")
	ErrRestaurantUnavailable = errors.New("restaurant_unavailable")
	ErrProductUnavailable    = errors.New("product_unavailable")
	ErrInvalidTransition     = errors.New("invalid_transition")
	ErrAlreadyAssigned       = errors.New("already_assigned")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCredentials    = errors.New("invalid_credentials")
	ErrDuplicateAccount      = errors.New("account_exists")
	ErrUpstream              = errors.New("upstream_unavailable")
)

// Code returns the stable machine-readable code for err, or "internal_error"
// when err does not wrap one of the known kinds.
func Code(err error) string {
	for _, kind := range []error{
		ErrValidation, ErrInvalidItems, ErrMissingContact, ErrNotFound,
		ErrRestaurantUnavailable, ErrProductUnavailable, ErrInvalidTransition,
		ErrAlreadyAssigned, ErrUnauthorized, ErrInvalidCredentials,
		ErrDuplicateAccount, ErrUpstream,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal_error"
}

// HTTPStatus maps an error kind to the HTTP status the handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidItems), errors.Is(err, ErrMissingContact):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrAlreadyAssigned),
		errors.Is(err, ErrRestaurantUnavailable), errors.Is(err, ErrProductUnavailable),
		errors.Is(err, ErrDuplicateAccount):
		return fiber.StatusConflict
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
