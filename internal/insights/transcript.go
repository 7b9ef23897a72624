package insights

import (
	"time"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
)

// LoadTranscript returns the user's persisted conversation, discarding
// it when it is older than the expiry window.
func LoadTranscript(store *storage.Store, userID string, now time.Time) ([]models.ChatMessage, error) {
	chat, ok, err := store.ChatHistory(userID)
	if err != nil || !ok {
		return nil, err
	}

	age := now.Sub(time.UnixMilli(chat.Timestamp))
	if age >= constants.ChatExpiry {
		if err := store.RemoveChatHistory(userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return chat.Messages, nil
}

// SaveTranscript persists the conversation with a fresh timestamp. An
// empty transcript clears the stored key instead.
func SaveTranscript(store *storage.Store, userID string, messages []models.ChatMessage, now time.Time) error {
	if len(messages) == 0 {
		return store.RemoveChatHistory(userID)
	}
	return store.SaveChatHistory(userID, models.StoredChat{
		Timestamp: now.UnixMilli(),
		Messages:  messages,
	})
}
