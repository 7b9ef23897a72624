package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/julianstephens/stitchlog/internal/models"
)

// Logical keys. The names match the legacy web app's localStorage keys
// so old exports migrate cleanly.
const (
	KeyAppData       = "garmentTrackerData"
	KeySetupComplete = "isSetupComplete"

	// Legacy single-profile keys, read only by the migration and removed
	// once it succeeds.
	KeyLegacyRecords  = "dailyRecords"
	KeyLegacyActiveID = "activeRecordId"

	chatKeyPrefix = "insightsChatHistory_"
)

// Store layers the typed application keys over a Provider.
//
// Concurrency note:
//   - Store is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple stitchlog processes that share the same storage path
//     at the same time is not supported and may lead to data loss.
type Store struct {
	provider Provider
	log      *slog.Logger
}

func New(provider Provider, log *slog.Logger) *Store {
	return &Store{provider: provider, log: log}
}

func (s *Store) Init() error { return s.provider.Init() }
func (s *Store) Load() error { return s.provider.Load() }
func (s *Store) Close() error { return s.provider.Close() }
func (s *Store) GetConfigPath() string { return s.provider.GetConfigPath() }

// AppData returns the primary state. A corrupt value is logged and
// discarded in favor of the empty state; it is never fatal.
func (s *Store) AppData() (models.AppData, error) {
	raw, ok, err := s.provider.Get(KeyAppData)
	if err != nil {
		return models.AppData{}, err
	}
	if !ok {
		return models.AppData{}, nil
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.log.Warn("incompatible app data found, starting fresh", "error", err)
		return models.AppData{}, nil
	}
	return data, nil
}

func (s *Store) SaveAppData(data models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize app data: %w", err)
	}
	return s.provider.Set(KeyAppData, raw)
}

// SetupComplete reports whether onboarding has finished. Corrupt values
// read as false.
func (s *Store) SetupComplete() (bool, error) {
	raw, ok, err := s.provider.Get(KeySetupComplete)
	if err != nil || !ok {
		return false, err
	}

	var done bool
	if err := json.Unmarshal(raw, &done); err != nil {
		s.log.Warn("incompatible setup flag found, assuming setup incomplete", "error", err)
		return false, nil
	}
	return done, nil
}

func (s *Store) SetSetupComplete(done bool) error {
	raw, _ := json.Marshal(done)
	return s.provider.Set(KeySetupComplete, raw)
}

// LegacyRecords reads the old single-profile record array. The second
// return reports key presence; a present-but-unparsable value returns an
// error so the migration can abort without touching it.
func (s *Store) LegacyRecords() ([]models.DailyRecord, bool, error) {
	raw, ok, err := s.provider.Get(KeyLegacyRecords)
	if err != nil || !ok {
		return nil, false, err
	}

	var records []models.DailyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, true, fmt.Errorf("failed to parse legacy records: %w", err)
	}
	return records, true, nil
}

// LegacyActiveRecordID reads the old active-record pointer.
func (s *Store) LegacyActiveRecordID() (string, bool, error) {
	raw, ok, err := s.provider.Get(KeyLegacyActiveID)
	if err != nil || !ok {
		return "", false, err
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", true, fmt.Errorf("failed to parse legacy active record id: %w", err)
	}
	return id, true, nil
}

// RemoveLegacyData deletes both legacy keys after a successful migration.
func (s *Store) RemoveLegacyData() error {
	if err := s.provider.Remove(KeyLegacyRecords); err != nil {
		return err
	}
	return s.provider.Remove(KeyLegacyActiveID)
}

func chatKey(userID string) string {
	return chatKeyPrefix + userID
}

// ChatHistory returns the persisted insights transcript for a user.
// Corrupt transcripts are dropped.
func (s *Store) ChatHistory(userID string) (models.StoredChat, bool, error) {
	raw, ok, err := s.provider.Get(chatKey(userID))
	if err != nil || !ok {
		return models.StoredChat{}, false, err
	}

	var chat models.StoredChat
	if err := json.Unmarshal(raw, &chat); err != nil {
		s.log.Warn("failed to load chat history, discarding", "user", userID, "error", err)
		_ = s.provider.Remove(chatKey(userID))
		return models.StoredChat{}, false, nil
	}
	return chat, true, nil
}

func (s *Store) SaveChatHistory(userID string, chat models.StoredChat) error {
	raw, err := json.Marshal(chat)
	if err != nil {
		return fmt.Errorf("failed to serialize chat history: %w", err)
	}
	return s.provider.Set(chatKey(userID), raw)
}

func (s *Store) RemoveChatHistory(userID string) error {
	return s.provider.Remove(chatKey(userID))
}
