// Package migration performs the one-time transform from the legacy
// single-profile layout (a bare record array plus an active-record
// pointer) to the current multi-profile layout.
package migration

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
)

type Migrator struct {
	store *storage.Store
	log   *slog.Logger

	// Now is swappable for tests.
	Now func() time.Time
}

func New(store *storage.Store, log *slog.Logger) *Migrator {
	return &Migrator{
		store: store,
		log:   log,
		Now:   time.Now,
	}
}

// Run migrates legacy data if present. It is idempotent: once the
// multi-profile key holds at least one user, nothing happens. A parse
// failure aborts without mutating anything, leaving the legacy keys in
// place for diagnosis or a later attempt.
func (m *Migrator) Run() error {
	data, err := m.store.AppData()
	if err != nil {
		return err
	}
	if len(data.Users) > 0 {
		return nil // already migrated or new install
	}

	records, found, err := m.store.LegacyRecords()
	if err != nil {
		m.log.Error("failed to migrate legacy data", "error", err)
		return nil
	}
	if !found {
		// Fresh install, not a migration; bootstrap handles it.
		return nil
	}

	m.log.Info("migrating legacy data to multi-profile layout")

	activeID, activeFound, err := m.store.LegacyActiveRecordID()
	if err != nil {
		m.log.Error("failed to migrate legacy data", "error", err)
		return nil
	}

	// Sort descending by date; the legacy array carried no ordering
	// guarantee.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	user := models.User{
		ID:               uuid.New().String(),
		Name:             constants.DefaultUserName,
		ClothTypePresets: []models.ClothTypePreset{},
		DailyRecords:     records,
		EarningsGoal:     0,
		EarningsStart:    m.earningsStart(records),
		Language:         models.LanguageEnglish,
	}
	if activeFound {
		user.ActiveRecordID = &activeID
	}

	data = models.AppData{
		Users:        []models.User{user},
		ActiveUserID: &user.ID,
	}
	if err := m.store.SaveAppData(data); err != nil {
		return err
	}
	if err := m.store.RemoveLegacyData(); err != nil {
		return err
	}
	// Migrated users have a working profile already; skip onboarding.
	if err := m.store.SetSetupComplete(true); err != nil {
		return err
	}

	m.log.Info("migration successful", "records", len(records))
	return nil
}

// earningsStart anchors the earnings tracker at midnight UTC of the
// earliest record's date, or now when there are no records.
func (m *Migrator) earningsStart(sorted []models.DailyRecord) string {
	if len(sorted) > 0 {
		return sorted[len(sorted)-1].Date + "T00:00:00.000Z"
	}
	return m.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
