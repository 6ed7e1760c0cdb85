package errors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation         = fmt.Errorf("validation failed")
	ErrUsernameTaken      = fmt.Errorf("username already taken")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrStoreUnavailable   = fmt.Errorf("store unavailable")
)

// MapToHTTPStatus translates a domain error into its transport status.
// Anything outside the taxonomy counts as a store failure, so internal
// detail never decides the response shape.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUsernameTaken):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
