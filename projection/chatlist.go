// Package projection derives read-side views from the append-only message
// logs. Every view is recomputed on demand from the log; nothing here is
// cached or persisted.
package projection

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/tartacosmica/chat-backend/domain"
	"github.com/tartacosmica/chat-backend/repositories"
)

// ChatSummary is one row of a user's private-chat inbox.
type ChatSummary struct {
	ChatID          string `json:"chatId"`
	OtherUsername   string `json:"otherUsername"`
	LastMessage     string `json:"lastMessage"`
	LastMessageTime int64  `json:"lastMessageTime"`
	UnreadCount     int    `json:"unreadCount"`
}

// ChatGroup is the raw grouped view of a conversation, before the
// counterpart username is resolved.
type ChatGroup struct {
	ChatID        string `json:"chatId"`
	LastMessage   string `json:"lastMessage"`
	LastTimestamp int64  `json:"lastTimestamp"`
	LastUsername  string `json:"lastUsername"`
}

type ChatList struct {
	messages repositories.IPrivateMessageRepository
}

func NewChatList(messages repositories.IPrivateMessageRepository) *ChatList {
	return &ChatList{messages: messages}
}

// GroupsFor selects every conversation whose chat id contains username and
// keeps the most recent message per conversation, ordered newest
// conversation first.
//
// The filter is a case-insensitive substring match (looseChatMatch): it can
// false-positive when one username nests inside another. Clients depend on
// that behavior, so it stays a substring match rather than a structural
// token parse.
func (p *ChatList) GroupsFor(username string) ([]ChatGroup, error) {
	needle := strings.ToLower(username)
	latest := map[string]ChatGroup{}
	err := p.messages.ScanRecent(func(message domain.PrivateMessage) (bool, error) {
		if !strings.Contains(strings.ToLower(message.ChatID), needle) {
			return true, nil
		}
		// The scan is newest-first within a conversation, so the first
		// hit per chat id is its latest message.
		if _, seen := latest[message.ChatID]; !seen {
			latest[message.ChatID] = ChatGroup{
				ChatID:        message.ChatID,
				LastMessage:   message.Message,
				LastTimestamp: message.Timestamp,
				LastUsername:  message.Username,
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	groups := lo.Values(latest)
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].LastTimestamp > groups[j].LastTimestamp
	})
	return groups, nil
}

// ChatListFor builds the inbox rows for one user. The unread count is
// presence only, reads are not tracked.
func (p *ChatList) ChatListFor(username string) ([]ChatSummary, error) {
	groups, err := p.GroupsFor(username)
	if err != nil {
		return nil, err
	}
	return lo.Map(groups, func(group ChatGroup, _ int) ChatSummary {
		return ChatSummary{
			ChatID:          group.ChatID,
			OtherUsername:   domain.OtherParticipant(group.ChatID, username),
			LastMessage:     group.LastMessage,
			LastMessageTime: group.LastTimestamp,
			UnreadCount:     0,
		}
	}), nil
}
