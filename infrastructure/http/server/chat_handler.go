package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tartacosmica/chat-backend/errors"
	"github.com/tartacosmica/chat-backend/services"
)

type postMessageRequest struct {
	Username    string `json:"username"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	IsPremium   bool   `json:"isPremium"`
	BubbleColor string `json:"bubbleColor"`
}

type postPrivateMessageRequest struct {
	ChatID      string `json:"chatId"`
	Username    string `json:"username"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	BubbleColor string `json:"bubbleColor"`
}

// listMessages GET /api/messages
func (s *ChatServer) listMessages(c *fiber.Ctx) error {
	messages, err := s.chatService.ListPublic()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(orEmpty(messages))
}

// postMessage POST /api/messages
func (s *ChatServer) postMessage(c *fiber.Ctx) error {
	var req postMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: malformed body", errors.ErrValidation))
	}

	message, err := s.chatService.PostPublic(services.PostPublicCommand{
		Username:    req.Username,
		Message:     req.Message,
		Timestamp:   req.Timestamp,
		IsPremium:   req.IsPremium,
		BubbleColor: req.BubbleColor,
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.monitoring.IncrPublicMessages()
	return c.Status(fiber.StatusCreated).JSON(message)
}

// clearMessages DELETE /api/messages
func (s *ChatServer) clearMessages(c *fiber.Ctx) error {
	deleted, err := s.chatService.ClearPublic()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"deletedCount": deleted,
		"message":      fmt.Sprintf("%d messages deleted", deleted),
	})
}

// premiumMessage GET /api/premium-message
func (s *ChatServer) premiumMessage(c *fiber.Ctx) error {
	premium, err := s.chatService.CurrentPremium()
	if err != nil {
		return s.fail(c, err)
	}
	if premium == nil {
		return c.JSON(nil)
	}
	return c.JSON(premium)
}

// activeUsers GET /api/active-users
func (s *ChatServer) activeUsers(c *fiber.Ctx) error {
	users, err := s.chatService.ActiveUsers()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(orEmpty(users))
}

// listPrivateMessages GET /api/private-messages/:chatId
func (s *ChatServer) listPrivateMessages(c *fiber.Ctx) error {
	messages, err := s.chatService.ListPrivate(c.Params("chatId"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(orEmpty(messages))
}

// postPrivateMessage POST /api/private-messages
func (s *ChatServer) postPrivateMessage(c *fiber.Ctx) error {
	var req postPrivateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: malformed body", errors.ErrValidation))
	}

	message, err := s.chatService.PostPrivate(services.PostPrivateCommand{
		ChatID:      req.ChatID,
		Username:    req.Username,
		Message:     req.Message,
		Timestamp:   req.Timestamp,
		BubbleColor: req.BubbleColor,
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.monitoring.IncrPrivateMessages()
	return c.Status(fiber.StatusCreated).JSON(message)
}

// myPrivateChats GET /api/my-private-chats/:username
func (s *ChatServer) myPrivateChats(c *fiber.Ctx) error {
	summaries, err := s.chatService.ChatListFor(c.Params("username"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(orEmpty(summaries))
}

// userChats GET /api/user-chats/:username
func (s *ChatServer) userChats(c *fiber.Ctx) error {
	groups, err := s.chatService.ChatGroupsFor(c.Params("username"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(orEmpty(groups))
}

// orEmpty keeps empty listings serializing as [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
