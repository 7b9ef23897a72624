// Package tracker owns the in-memory application state and every named
// mutation on it: profile management, record lifecycle, soft delete,
// restore, and the load-time trash sweep. All mutations write through to
// the store synchronously.
package tracker

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
)

// isoFormat matches the millisecond-precision UTC timestamps the legacy
// data uses, so old and new values compare lexicographically.
const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// recordIDFormat is fixed-width so record ids sort by creation time.
const recordIDFormat = "20060102T150405.000000000Z"

type Manager struct {
	store *storage.Store
	log   *slog.Logger
	data  models.AppData

	// now is swappable for tests.
	now func() time.Time

	// purgeDone guards the trash sweep so it runs at most once per load.
	purgeDone bool
}

// New loads the primary state from the store. The store must already be
// loaded.
func New(store *storage.Store, log *slog.Logger) (*Manager, error) {
	data, err := store.AppData()
	if err != nil {
		return nil, fmt.Errorf("failed to load app data: %w", err)
	}

	return &Manager{
		store: store,
		log:   log,
		data:  data,
		now:   time.Now,
	}, nil
}

func (m *Manager) save() error {
	return m.store.SaveAppData(m.data)
}

func (m *Manager) nowISO() string {
	return m.now().UTC().Format(isoFormat)
}

func (m *Manager) today() string {
	return m.now().UTC().Format("2006-01-02")
}

func (m *Manager) newRecordID() string {
	return m.now().UTC().Format(recordIDFormat) + "-" + uuid.New().String()[:8]
}

func (m *Manager) newUser(name string) models.User {
	return models.User{
		ID:               uuid.New().String(),
		Name:             name,
		ClothTypePresets: []models.ClothTypePreset{},
		DailyRecords:     []models.DailyRecord{},
		ActiveRecordID:   nil,
		EarningsGoal:     0,
		EarningsStart:    m.nowISO(),
		Language:         models.LanguageEnglish,
	}
}

// Bootstrap ensures at least one profile exists and is active. Safe to
// call on every load.
func (m *Manager) Bootstrap() error {
	if len(m.data.Users) > 0 {
		return nil
	}

	user := m.newUser(constants.DefaultUserName)
	m.data.Users = []models.User{user}
	m.data.ActiveUserID = &user.ID
	return m.save()
}

// Users returns every profile.
func (m *Manager) Users() []models.User {
	return m.data.Users
}

// ActiveUser returns the active profile, or false when the active-user
// pointer is unset or dangling. Callers treat false as an uninitialized
// display state, never an error.
func (m *Manager) ActiveUser() (models.User, bool) {
	u, ok := m.activeUser()
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

func (m *Manager) activeUser() (*models.User, bool) {
	if m.data.ActiveUserID == nil {
		return nil, false
	}
	return m.findUser(*m.data.ActiveUserID)
}

func (m *Manager) findUser(id string) (*models.User, bool) {
	for i := range m.data.Users {
		if m.data.Users[i].ID == id {
			return &m.data.Users[i], true
		}
	}
	return nil, false
}

// UpdateUser applies mutate to the matching profile and persists. A
// missing user is a no-op. Every other mutation below is expressed in
// terms of this primitive.
func (m *Manager) UpdateUser(userID string, mutate func(*models.User)) error {
	user, ok := m.findUser(userID)
	if !ok {
		return nil
	}
	mutate(user)
	return m.save()
}

// SwitchUser moves the global active-user pointer. Existence is not
// validated: switching to an unknown id yields "no active user", which
// callers handle as an initialization state.
func (m *Manager) SwitchUser(userID string) error {
	m.data.ActiveUserID = &userID
	return m.save()
}

// AddUser creates a profile with defaults and makes it active.
func (m *Manager) AddUser(name string) (models.User, error) {
	user := m.newUser(name)
	m.data.Users = append(m.data.Users, user)
	m.data.ActiveUserID = &user.ID
	return user, m.save()
}

// RenameUser trims and assigns; a name that trims to empty is a no-op.
func (m *Manager) RenameUser(userID, newName string) error {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return nil
	}
	return m.UpdateUser(userID, func(u *models.User) {
		u.Name = trimmed
	})
}

// UpdateUserPresets replaces the preset collection wholesale. Additions,
// edits, and deletions all arrive as a full replacement slice.
func (m *Manager) UpdateUserPresets(userID string, presets []models.ClothTypePreset) error {
	return m.UpdateUser(userID, func(u *models.User) {
		u.ClothTypePresets = presets
	})
}

// sortRecords keeps a user's records ordered descending by (date, id).
func sortRecords(records []models.DailyRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].ID > records[j].ID
	})
}

// EnsureActiveRecord guarantees the active user points at an existing
// record, creating an empty one dated today when needed. Idempotent once
// a valid active record exists.
func (m *Manager) EnsureActiveRecord() error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	if user.ActiveRecordID != nil {
		for _, r := range VisibleRecords(user.DailyRecords) {
			if r.ID == *user.ActiveRecordID {
				return nil
			}
		}
	}

	record := models.DailyRecord{
		ID:       m.newRecordID(),
		Date:     m.today(),
		Sessions: []models.ClothSession{},
	}
	user.DailyRecords = append(user.DailyRecords, record)
	sortRecords(user.DailyRecords)
	user.ActiveRecordID = &record.ID
	return m.save()
}

// ChangeDate activates the most recent visible record for the given
// date, creating an empty one when none exists. Activating the date of
// the current active record is a no-op.
func (m *Manager) ChangeDate(newDate string) error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	if rec, ok := m.activeRecord(user); ok && rec.Date == newDate {
		return nil
	}

	var best *models.DailyRecord
	for _, r := range VisibleRecords(user.DailyRecords) {
		if r.Date != newDate {
			continue
		}
		if best == nil || r.ID > best.ID {
			r := r
			best = &r
		}
	}
	if best != nil {
		user.ActiveRecordID = &best.ID
		return m.save()
	}

	record := models.DailyRecord{
		ID:       m.newRecordID(),
		Date:     newDate,
		Sessions: []models.ClothSession{},
	}
	user.DailyRecords = append(user.DailyRecords, record)
	sortRecords(user.DailyRecords)
	user.ActiveRecordID = &record.ID
	return m.save()
}

func (m *Manager) activeRecord(user *models.User) (models.DailyRecord, bool) {
	if user.ActiveRecordID == nil {
		return models.DailyRecord{}, false
	}
	for _, r := range VisibleRecords(user.DailyRecords) {
		if r.ID == *user.ActiveRecordID {
			return r, true
		}
	}
	return models.DailyRecord{}, false
}

// ActiveRecord returns the visible projection of the active user's
// current record.
func (m *Manager) ActiveRecord() (models.DailyRecord, bool) {
	user, ok := m.activeUser()
	if !ok {
		return models.DailyRecord{}, false
	}
	return m.activeRecord(user)
}

// fullActiveRecord returns the active record with trashed sessions
// intact. Edit paths must start from this copy so that writing the
// record back never drops sessions that are sitting in the trash.
func (m *Manager) fullActiveRecord() (models.DailyRecord, bool) {
	user, ok := m.activeUser()
	if !ok || user.ActiveRecordID == nil {
		return models.DailyRecord{}, false
	}
	for _, r := range user.DailyRecords {
		if r.ID == *user.ActiveRecordID {
			return r, true
		}
	}
	return models.DailyRecord{}, false
}

// UpdateActiveRecord replaces the record matching record.ID in the
// active user's collection and re-sorts. This is the single mutation
// path for all session and entry edits.
func (m *Manager) UpdateActiveRecord(record models.DailyRecord) error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	for i := range user.DailyRecords {
		if user.DailyRecords[i].ID == record.ID {
			user.DailyRecords[i] = record
			break
		}
	}
	sortRecords(user.DailyRecords)
	return m.save()
}

func groupByRecord(items []models.SessionToDelete) map[string]map[string]bool {
	grouped := make(map[string]map[string]bool)
	for _, item := range items {
		if grouped[item.RecordID] == nil {
			grouped[item.RecordID] = make(map[string]bool)
		}
		grouped[item.RecordID][item.SessionID] = true
	}
	return grouped
}

// ArchiveSessions soft-deletes the addressed sessions by stamping
// deletedAt. Nothing is removed from the collection.
func (m *Manager) ArchiveSessions(items []models.SessionToDelete) error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	grouped := groupByRecord(items)
	now := m.nowISO()
	for ri := range user.DailyRecords {
		targets := grouped[user.DailyRecords[ri].ID]
		if targets == nil {
			continue
		}
		for si := range user.DailyRecords[ri].Sessions {
			if targets[user.DailyRecords[ri].Sessions[si].ID] {
				stamp := now
				user.DailyRecords[ri].Sessions[si].DeletedAt = &stamp
			}
		}
	}
	return m.save()
}

// RestoreSessions clears deletedAt on the addressed sessions.
func (m *Manager) RestoreSessions(items []models.SessionToDelete) error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	grouped := groupByRecord(items)
	for ri := range user.DailyRecords {
		targets := grouped[user.DailyRecords[ri].ID]
		if targets == nil {
			continue
		}
		for si := range user.DailyRecords[ri].Sessions {
			if targets[user.DailyRecords[ri].Sessions[si].ID] {
				user.DailyRecords[ri].Sessions[si].DeletedAt = nil
			}
		}
	}
	return m.save()
}

// PermanentlyDeleteSessions removes the addressed sessions outright. A
// record emptied by the removal is pruned; records that were already
// empty, or were not addressed, are left alone. This is the only path
// that deletes a DailyRecord.
func (m *Manager) PermanentlyDeleteSessions(items []models.SessionToDelete) error {
	user, ok := m.activeUser()
	if !ok {
		return nil
	}

	grouped := groupByRecord(items)
	kept := user.DailyRecords[:0]
	for _, record := range user.DailyRecords {
		targets := grouped[record.ID]
		if targets == nil {
			kept = append(kept, record)
			continue
		}

		sessions := make([]models.ClothSession, 0, len(record.Sessions))
		for _, session := range record.Sessions {
			if !targets[session.ID] {
				sessions = append(sessions, session)
			}
		}
		removed := len(sessions) < len(record.Sessions)
		if removed && len(sessions) == 0 {
			continue // deletion emptied the record
		}
		record.Sessions = sessions
		kept = append(kept, record)
	}
	user.DailyRecords = kept
	return m.save()
}

// PurgeExpiredTrash hard-deletes sessions trashed more than the
// retention window ago, for every user, and prunes records the sweep
// emptied. It runs at most once per Manager; later calls are no-ops.
func (m *Manager) PurgeExpiredTrash() (int, error) {
	if m.purgeDone {
		return 0, nil
	}
	m.purgeDone = true

	cutoff := m.now().Add(-constants.TrashRetention)
	purged := 0

	for ui := range m.data.Users {
		user := &m.data.Users[ui]
		kept := user.DailyRecords[:0]
		for _, record := range user.DailyRecords {
			sessions := make([]models.ClothSession, 0, len(record.Sessions))
			for _, session := range record.Sessions {
				if session.DeletedAt != nil {
					deletedAt, err := time.Parse(time.RFC3339, *session.DeletedAt)
					if err == nil && deletedAt.Before(cutoff) {
						purged++
						continue
					}
				}
				sessions = append(sessions, session)
			}
			removed := len(sessions) < len(record.Sessions)
			if removed && len(sessions) == 0 {
				continue // sweep emptied the record
			}
			record.Sessions = sessions
			kept = append(kept, record)
		}
		user.DailyRecords = kept
	}

	if purged == 0 {
		return 0, nil
	}
	m.log.Info("purged expired sessions from trash", "count", purged)
	return purged, m.save()
}
