package projection

import (
	"github.com/tartacosmica/chat-backend/domain"
	"github.com/tartacosmica/chat-backend/repositories"
)

// ActiveUser is one recently active room participant with their latest
// message.
type ActiveUser struct {
	Username      string `json:"username"`
	LastMessage   string `json:"lastMessage"`
	LastTimestamp int64  `json:"lastTimestamp"`
}

type Presence struct {
	messages repositories.IPublicMessageRepository
}

func NewPresence(messages repositories.IPublicMessageRepository) *Presence {
	return &Presence{messages: messages}
}

// ActiveUsers lists the most recent distinct senders of the room, newest
// first, bounded by limit. Premium records are skipped so the broadcast
// slot never surfaces as a pseudo-user.
func (p *Presence) ActiveUsers(limit int) ([]ActiveUser, error) {
	seen := map[string]struct{}{}
	var users []ActiveUser
	err := p.messages.ScanRecent(func(message domain.PublicMessage) (bool, error) {
		if message.IsPremium {
			return true, nil
		}
		if _, ok := seen[message.Username]; ok {
			return true, nil
		}
		seen[message.Username] = struct{}{}
		users = append(users, ActiveUser{
			Username:      message.Username,
			LastMessage:   message.Message,
			LastTimestamp: message.Timestamp,
		})
		return limit <= 0 || len(users) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
