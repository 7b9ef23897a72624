package models

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn in the insights conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// StoredChat is the persisted transcript for one user. Timestamp is unix
// milliseconds of the last update; transcripts older than the expiry
// window are discarded on load.
type StoredChat struct {
	Timestamp int64         `json:"timestamp"`
	Messages  []ChatMessage `json:"messages"`
}
