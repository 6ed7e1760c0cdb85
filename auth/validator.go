package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterRequest carries the credentials of a registration attempt, with
// the username already trimmed by the caller.
type RegisterRequest struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=4"`
}

// ValidateRegister enforces the length constraints before any store access
// or cryptographic work happens.
func ValidateRegister(req RegisterRequest) error {
	return validate.Struct(req)
}
