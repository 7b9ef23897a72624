package tracker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
)

// StartSession appends a new session to the active record. Custom
// categories carry over from the most recently created session across
// all records, so workers keep their extra columns day to day.
func (m *Manager) StartSession(clothType string, rate float64) (models.ClothSession, error) {
	if err := m.EnsureActiveRecord(); err != nil {
		return models.ClothSession{}, err
	}

	record, ok := m.fullActiveRecord()
	if !ok {
		return models.ClothSession{}, fmt.Errorf("no active record")
	}

	session := models.ClothSession{
		ID:               uuid.New().String(),
		ClothType:        clothType,
		Entries:          []models.Entry{},
		CustomCategories: m.lastCustomCategories(),
		Rate:             rate,
	}
	record.Sessions = append(record.Sessions, session)
	return session, m.UpdateActiveRecord(record)
}

// lastCustomCategories finds the newest session anywhere in the active
// user's records and returns its custom categories.
func (m *Manager) lastCustomCategories() []string {
	user, ok := m.activeUser()
	if !ok {
		return []string{}
	}
	for _, record := range VisibleRecords(user.DailyRecords) {
		if n := len(record.Sessions); n > 0 {
			return append([]string{}, record.Sessions[n-1].CustomCategories...)
		}
	}
	return []string{}
}

// findSession locates a session in the active record. An empty id means
// the most recently created session that is not in the trash.
func findSession(record models.DailyRecord, sessionID string) (int, error) {
	if sessionID == "" {
		for i := len(record.Sessions) - 1; i >= 0; i-- {
			if !record.Sessions[i].Trashed() {
				return i, nil
			}
		}
		return 0, fmt.Errorf("no sessions in the active record")
	}
	for i, s := range record.Sessions {
		if s.ID == sessionID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("session not found: %s", sessionID)
}

// AddEntry records one numpad submission against a session of the
// active record. Zero or negative counts are rejected before an entry
// is constructed. Entries are prepended so the newest reads first.
func (m *Manager) AddEntry(sessionID, category string, count int) (models.Entry, error) {
	if count <= 0 {
		return models.Entry{}, fmt.Errorf("count must be a positive integer")
	}
	if strings.TrimSpace(category) == "" {
		return models.Entry{}, fmt.Errorf("category must not be empty")
	}

	record, ok := m.fullActiveRecord()
	if !ok {
		return models.Entry{}, fmt.Errorf("no active record")
	}

	i, err := findSession(record, sessionID)
	if err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		ID:        uuid.New().String(),
		Timestamp: m.nowISO(),
		Counts:    map[string]int{category: count},
	}
	record.Sessions[i].Entries = append([]models.Entry{entry}, record.Sessions[i].Entries...)
	return entry, m.UpdateActiveRecord(record)
}

// DeleteEntry removes an entry permanently. Entries have no trash tier;
// only whole sessions do.
func (m *Manager) DeleteEntry(sessionID, entryID string) error {
	record, ok := m.fullActiveRecord()
	if !ok {
		return fmt.Errorf("no active record")
	}

	i, err := findSession(record, sessionID)
	if err != nil {
		return err
	}

	entries := make([]models.Entry, 0, len(record.Sessions[i].Entries))
	for _, e := range record.Sessions[i].Entries {
		if e.ID != entryID {
			entries = append(entries, e)
		}
	}
	record.Sessions[i].Entries = entries
	return m.UpdateActiveRecord(record)
}

// AddCustomCategory adds a session-scoped category label. Names that
// collide case-insensitively with a default or existing custom category
// are silently declined.
func (m *Manager) AddCustomCategory(sessionID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}

	record, ok := m.fullActiveRecord()
	if !ok {
		return fmt.Errorf("no active record")
	}

	i, err := findSession(record, sessionID)
	if err != nil {
		return err
	}

	all := append(append([]string{}, constants.DefaultCategories...), record.Sessions[i].CustomCategories...)
	for _, existing := range all {
		if strings.EqualFold(existing, name) {
			return nil
		}
	}
	record.Sessions[i].CustomCategories = append(record.Sessions[i].CustomCategories, name)
	return m.UpdateActiveRecord(record)
}

// RemoveCustomCategory drops a session-scoped category label.
func (m *Manager) RemoveCustomCategory(sessionID, name string) error {
	record, ok := m.fullActiveRecord()
	if !ok {
		return fmt.Errorf("no active record")
	}

	i, err := findSession(record, sessionID)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(record.Sessions[i].CustomCategories))
	for _, c := range record.Sessions[i].CustomCategories {
		if c != name {
			kept = append(kept, c)
		}
	}
	record.Sessions[i].CustomCategories = kept
	return m.UpdateActiveRecord(record)
}
