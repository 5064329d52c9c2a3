package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidateLogin rejects blank credentials before any repository lookup.
// Whitespace-only values count as missing, matching the login contract
// "username and password are required".
func ValidateLogin(req LoginRequest) error {
	trimmed := LoginRequest{
		Username: strings.TrimSpace(req.Username),
		Password: strings.TrimSpace(req.Password),
	}
	return validate.Struct(trimmed)
}
