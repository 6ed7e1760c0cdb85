package domain

import "strings"

// ChatIDDelimiter separates the two participant tokens of a pairing key,
// conventionally "userA_userB".
const ChatIDDelimiter = "_"

// OtherParticipant recovers the counterpart encoded in chatID for the
// given username. Malformed ids (missing delimiter, extra tokens, neither
// token matching the username) degrade to the first token, so one bad
// record never breaks a whole listing.
func OtherParticipant(chatID, username string) string {
	parts := strings.Split(chatID, ChatIDDelimiter)
	if len(parts) >= 2 && strings.EqualFold(parts[0], username) {
		return parts[1]
	}
	return parts[0]
}
