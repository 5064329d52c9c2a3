package http

import (
	"github.com/gofiber/fiber/v2"

	"chatroom/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin resolves credentials to an accepted/rejected outcome before
// the client opens its stream.
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": errors.ErrMissingCredentials.Error(),
		})
	}

	result, err := s.auth.Login(req.Username, req.Password)
	switch err {
	case nil:
	case errors.ErrMissingCredentials:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	case errors.ErrInvalidCredentials:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	default:
		s.log.Error("login failed", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "login successful",
		"username": result.Username,
		"token":    result.Token,
	})
}
