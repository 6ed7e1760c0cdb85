package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tartacosmica/chat-backend/errors"
	"github.com/tartacosmica/chat-backend/observability"
	"github.com/tartacosmica/chat-backend/services"
)

type ChatServer struct {
	log                *slog.Logger
	authService        services.IAuthService
	chatService        services.IChatService
	monitoring         *observability.MonitoringManager
	enableAccounts     bool
	enablePrivateChats bool
}

func NewChatServer(
	log *slog.Logger,
	authService services.IAuthService,
	chatService services.IChatService,
	monitoring *observability.MonitoringManager,
	enableAccounts, enablePrivateChats bool,
) *ChatServer {
	return &ChatServer{
		log:                log,
		authService:        authService,
		chatService:        chatService,
		monitoring:         monitoring,
		enableAccounts:     enableAccounts,
		enablePrivateChats: enablePrivateChats,
	}
}

// Router mounts the route contract. Accounts and private chats are
// optional surfaces toggled by configuration.
func (s *ChatServer) Router() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/", s.index)
	app.Get("/api/messages", s.listMessages)
	app.Post("/api/messages", s.postMessage)
	app.Delete("/api/messages", s.clearMessages)
	app.Get("/api/premium-message", s.premiumMessage)
	app.Get("/api/active-users", s.activeUsers)
	app.Get("/api/stats", s.stats)

	if s.enableAccounts {
		app.Post("/api/register", s.register)
		app.Post("/api/login", s.login)
	}
	if s.enablePrivateChats {
		app.Get("/api/private-messages/:chatId", s.listPrivateMessages)
		app.Post("/api/private-messages", s.postPrivateMessage)
		app.Get("/api/my-private-chats/:username", s.myPrivateChats)
		app.Get("/api/user-chats/:username", s.userChats)
	}
	return app
}

// fail maps a domain error to its transport response. Store failures are
// logged with context and answered with a generic message so internal
// detail never reaches the caller.
func (s *ChatServer) fail(c *fiber.Ctx, err error) error {
	s.monitoring.IncrFailedRequests()
	status := errors.MapToHTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (s *ChatServer) stats(c *fiber.Ctx) error {
	return c.JSON(s.monitoring.Snapshot())
}

func (s *ChatServer) index(c *fiber.Ctx) error {
	endpoints := fiber.Map{
		"GET /api/messages":        "list room messages",
		"POST /api/messages":       "send a room message (isPremium:true targets the broadcast slot)",
		"DELETE /api/messages":     "clear the room log",
		"GET /api/premium-message": "current premium broadcast",
		"GET /api/active-users":    "recently active room participants",
		"GET /api/stats":           "service counters",
	}
	if s.enableAccounts {
		endpoints["POST /api/register"] = "register a new user"
		endpoints["POST /api/login"] = "log in"
	}
	if s.enablePrivateChats {
		endpoints["GET /api/private-messages/:chatId"] = "list a private conversation"
		endpoints["POST /api/private-messages"] = "send a private message"
		endpoints["GET /api/my-private-chats/:username"] = "private-chat inbox"
		endpoints["GET /api/user-chats/:username"] = "raw grouped conversations"
	}
	return c.JSON(fiber.Map{
		"message":   "Chat Backend API",
		"endpoints": endpoints,
	})
}
