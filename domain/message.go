package domain

// PublicMessage is one record of the shared room log. A record flagged
// premium occupies the rotating broadcast slot instead of the room feed.
type PublicMessage struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	IsPremium   bool   `json:"isPremium"`
	BubbleColor string `json:"bubbleColor,omitempty"`
}

// PrivateMessage is one record of a pairwise conversation, tagged with the
// pairing key of its two participants.
type PrivateMessage struct {
	ID          string `json:"id"`
	ChatID      string `json:"chatId"`
	Username    string `json:"username"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	BubbleColor string `json:"bubbleColor,omitempty"`
}
