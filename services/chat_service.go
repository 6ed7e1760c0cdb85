package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartacosmica/chat-backend/domain"
	"github.com/tartacosmica/chat-backend/errors"
	"github.com/tartacosmica/chat-backend/projection"
	"github.com/tartacosmica/chat-backend/repositories"
)

type IChatService interface {
	PostPublic(cmd PostPublicCommand) (domain.PublicMessage, error)
	ListPublic() ([]domain.PublicMessage, error)
	ClearPublic() (int, error)
	CurrentPremium() (*domain.PublicMessage, error)
	PostPrivate(cmd PostPrivateCommand) (domain.PrivateMessage, error)
	ListPrivate(chatID string) ([]domain.PrivateMessage, error)
	ChatListFor(username string) ([]projection.ChatSummary, error)
	ChatGroupsFor(username string) ([]projection.ChatGroup, error)
	ActiveUsers() ([]projection.ActiveUser, error)
}

// PostPublicCommand carries a room message sending intent. A zero
// Timestamp means "assign server time".
type PostPublicCommand struct {
	Username    string
	Message     string
	Timestamp   int64
	IsPremium   bool
	BubbleColor string
}

// PostPrivateCommand carries a private message sending intent.
type PostPrivateCommand struct {
	ChatID      string
	Username    string
	Message     string
	Timestamp   int64
	BubbleColor string
}

type ChatService struct {
	public        repositories.IPublicMessageRepository
	private       repositories.IPrivateMessageRepository
	chatList      *projection.ChatList
	presence      *projection.Presence
	historyLimit  int
	presenceLimit int
	log           *slog.Logger
}

func NewChatService(
	public repositories.IPublicMessageRepository,
	private repositories.IPrivateMessageRepository,
	historyLimit, presenceLimit int,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		public:        public,
		private:       private,
		chatList:      projection.NewChatList(private),
		presence:      projection.NewPresence(public),
		historyLimit:  historyLimit,
		presenceLimit: presenceLimit,
		log:           log,
	}
}

func (s *ChatService) PostPublic(cmd PostPublicCommand) (domain.PublicMessage, error) {
	username := strings.TrimSpace(cmd.Username)
	content := strings.TrimSpace(cmd.Message)
	if username == "" || content == "" {
		return domain.PublicMessage{}, fmt.Errorf("%w: username and message are required", errors.ErrValidation)
	}

	return s.public.Append(domain.PublicMessage{
		Username:    username,
		Message:     content,
		Timestamp:   orNow(cmd.Timestamp),
		IsPremium:   cmd.IsPremium,
		BubbleColor: cmd.BubbleColor,
	})
}

func (s *ChatService) ListPublic() ([]domain.PublicMessage, error) {
	return s.public.List(s.historyLimit)
}

func (s *ChatService) ClearPublic() (int, error) {
	deleted, err := s.public.ClearAll()
	if err != nil {
		return 0, err
	}
	s.log.Info("public log cleared", "deleted", deleted)
	return deleted, nil
}

func (s *ChatService) CurrentPremium() (*domain.PublicMessage, error) {
	return s.public.CurrentPremium()
}

func (s *ChatService) PostPrivate(cmd PostPrivateCommand) (domain.PrivateMessage, error) {
	chatID := strings.TrimSpace(cmd.ChatID)
	username := strings.TrimSpace(cmd.Username)
	content := strings.TrimSpace(cmd.Message)
	if chatID == "" || username == "" || content == "" {
		return domain.PrivateMessage{}, fmt.Errorf("%w: chatId, username and message are required", errors.ErrValidation)
	}

	return s.private.Append(domain.PrivateMessage{
		ChatID:      chatID,
		Username:    username,
		Message:     content,
		Timestamp:   orNow(cmd.Timestamp),
		BubbleColor: cmd.BubbleColor,
	})
}

func (s *ChatService) ListPrivate(chatID string) ([]domain.PrivateMessage, error) {
	return s.private.List(chatID, s.historyLimit)
}

func (s *ChatService) ChatListFor(username string) ([]projection.ChatSummary, error) {
	return s.chatList.ChatListFor(username)
}

func (s *ChatService) ChatGroupsFor(username string) ([]projection.ChatGroup, error) {
	return s.chatList.GroupsFor(username)
}

func (s *ChatService) ActiveUsers() ([]projection.ActiveUser, error) {
	return s.presence.ActiveUsers(s.presenceLimit)
}

func orNow(timestamp int64) int64 {
	if timestamp != 0 {
		return timestamp
	}
	return time.Now().UnixMilli()
}
