package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tartacosmica/chat-backend/errors"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register POST /api/register
func (s *ChatServer) register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: malformed body", errors.ErrValidation))
	}
	if req.Username == "" || req.Password == "" {
		return s.fail(c, fmt.Errorf("%w: username and password are required", errors.ErrValidation))
	}

	account, err := s.authService.Register(req.Username, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	s.monitoring.IncrRegistrations()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"username": account.Username,
	})
}

// login POST /api/login
func (s *ChatServer) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: malformed body", errors.ErrValidation))
	}
	if req.Username == "" || req.Password == "" {
		return s.fail(c, fmt.Errorf("%w: username and password are required", errors.ErrValidation))
	}

	account, err := s.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	s.monitoring.IncrLogins()
	return c.JSON(fiber.Map{
		"success":  true,
		"username": account.Username,
	})
}
