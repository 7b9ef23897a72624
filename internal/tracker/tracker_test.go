package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/logging"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stitchlog.json")
	store := storage.New(storage.NewJSONStore(path), logging.Discard())
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	mgr, err := New(store, logging.Discard())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if err := mgr.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap: %v", err)
	}
	return mgr
}

func setClock(m *Manager, at time.Time) {
	m.now = func() time.Time { return at }
}

func TestBootstrapCreatesDefaultProfile(t *testing.T) {
	mgr := newTestManager(t)

	user, ok := mgr.ActiveUser()
	if !ok {
		t.Fatal("expected an active user after bootstrap")
	}
	if user.Name != constants.DefaultUserName {
		t.Errorf("bootstrap user name = %q, want %q", user.Name, constants.DefaultUserName)
	}

	// A second bootstrap must not add another profile.
	if err := mgr.Bootstrap(); err != nil {
		t.Fatal(err)
	}
	if got := len(mgr.Users()); got != 1 {
		t.Errorf("users after double bootstrap = %d, want 1", got)
	}
}

func TestStartSessionAndAddEntry(t *testing.T) {
	mgr := newTestManager(t)

	session, err := mgr.StartSession("Shirt", 2.5)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.AddEntry(session.ID, "OK", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.AddEntry(session.ID, "Rework", 2); err != nil {
		t.Fatal(err)
	}

	record, ok := mgr.ActiveRecord()
	if !ok {
		t.Fatal("expected an active record")
	}
	entries := record.Sessions[0].Entries
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Counts["Rework"] != 2 {
		t.Errorf("newest entry = %v, want the Rework entry first", entries[0].Counts)
	}
}

func TestAddEntryRejectsInvalidInput(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.StartSession("Shirt", 0); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.AddEntry("", "OK", 0); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := mgr.AddEntry("", "OK", -5); err == nil {
		t.Error("expected error for negative count")
	}
	if _, err := mgr.AddEntry("", "  ", 3); err == nil {
		t.Error("expected error for blank category")
	}
}

func TestAddEntryDefaultsToLastSession(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.StartSession("Shirt", 0); err != nil {
		t.Fatal(err)
	}
	second, err := mgr.StartSession("Pant", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.AddEntry("", "OK", 4); err != nil {
		t.Fatal(err)
	}

	record, _ := mgr.ActiveRecord()
	for _, s := range record.Sessions {
		if s.ID == second.ID && len(s.Entries) != 1 {
			t.Errorf("entry did not land on the newest session")
		}
		if s.ID != second.ID && len(s.Entries) != 0 {
			t.Errorf("entry landed on the wrong session")
		}
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	session, err := mgr.StartSession("Shirt", 2)
	if err != nil {
		t.Fatal(err)
	}
	record, _ := mgr.ActiveRecord()

	items := []models.SessionToDelete{{RecordID: record.ID, SessionID: session.ID}}
	if err := mgr.ArchiveSessions(items); err != nil {
		t.Fatal(err)
	}

	visible, _ := mgr.ActiveRecord()
	if len(visible.Sessions) != 0 {
		t.Errorf("archived session still visible")
	}

	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 1 {
		t.Errorf("record was dropped by archiving")
	}
	trash := TrashItems(user)
	if len(trash) != 1 {
		t.Fatalf("trash items = %d, want 1", len(trash))
	}
	if trash[0].Session.DeletedAt == nil {
		t.Error("trashed session missing deletedAt stamp")
	}

	if err := mgr.RestoreSessions(items); err != nil {
		t.Fatal(err)
	}
	visible, _ = mgr.ActiveRecord()
	if len(visible.Sessions) != 1 {
		t.Errorf("restored session not visible")
	}
	if visible.Sessions[0].DeletedAt != nil {
		t.Error("restored session still carries deletedAt")
	}
}

func TestEditsPreserveTrashedSessions(t *testing.T) {
	mgr := newTestManager(t)
	first, _ := mgr.StartSession("Shirt", 2)
	record, _ := mgr.ActiveRecord()
	if err := mgr.ArchiveSessions([]models.SessionToDelete{{RecordID: record.ID, SessionID: first.ID}}); err != nil {
		t.Fatal(err)
	}

	// Edits through the visible projection must not drop the trashed
	// session from the store.
	second, err := mgr.StartSession("Pant", 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.AddEntry(second.ID, "OK", 5); err != nil {
		t.Fatal(err)
	}

	user, _ := mgr.ActiveUser()
	if got := len(TrashItems(user)); got != 1 {
		t.Errorf("trash items after edits = %d, want 1", got)
	}
}

func TestVisibleRecordsKeepEmptyRecords(t *testing.T) {
	records := []models.DailyRecord{
		{ID: "r1", Date: "2025-06-01", Sessions: []models.ClothSession{
			{ID: "s1", DeletedAt: strPtr("2025-06-01T10:00:00.000Z")},
		}},
	}
	visible := VisibleRecords(records)
	if len(visible) != 1 {
		t.Fatal("record with only trashed sessions was dropped")
	}
	if len(visible[0].Sessions) != 0 {
		t.Error("trashed session leaked into the visible projection")
	}
	// Projection must not mutate the underlying data.
	if len(records[0].Sessions) != 1 {
		t.Error("projection mutated the source records")
	}
}

func strPtr(s string) *string { return &s }

func TestPermanentDeletePrunesEmptiedRecord(t *testing.T) {
	mgr := newTestManager(t)
	only, _ := mgr.StartSession("Shirt", 2)
	record, _ := mgr.ActiveRecord()

	if err := mgr.PermanentlyDeleteSessions([]models.SessionToDelete{
		{RecordID: record.ID, SessionID: only.ID},
	}); err != nil {
		t.Fatal(err)
	}

	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 0 {
		t.Errorf("record emptied by deletion was not pruned")
	}
}

func TestPermanentDeleteKeepsRecordWithSurvivors(t *testing.T) {
	mgr := newTestManager(t)
	first, _ := mgr.StartSession("Shirt", 2)
	if _, err := mgr.StartSession("Pant", 3); err != nil {
		t.Fatal(err)
	}
	record, _ := mgr.ActiveRecord()

	if err := mgr.PermanentlyDeleteSessions([]models.SessionToDelete{
		{RecordID: record.ID, SessionID: first.ID},
	}); err != nil {
		t.Fatal(err)
	}

	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 1 {
		t.Fatalf("record with a surviving session was pruned")
	}
	if len(user.DailyRecords[0].Sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(user.DailyRecords[0].Sessions))
	}
}

func TestPurgeExpiredTrash(t *testing.T) {
	mgr := newTestManager(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	setClock(mgr, now)

	expired, _ := mgr.StartSession("Old", 1)
	fresh, _ := mgr.StartSession("New", 1)
	record, _ := mgr.ActiveRecord()

	// Trash one session 8 days ago, one 6 days ago.
	setClock(mgr, now.Add(-8*24*time.Hour))
	if err := mgr.ArchiveSessions([]models.SessionToDelete{{RecordID: record.ID, SessionID: expired.ID}}); err != nil {
		t.Fatal(err)
	}
	setClock(mgr, now.Add(-6*24*time.Hour))
	if err := mgr.ArchiveSessions([]models.SessionToDelete{{RecordID: record.ID, SessionID: fresh.ID}}); err != nil {
		t.Fatal(err)
	}

	setClock(mgr, now)
	purged, err := mgr.PurgeExpiredTrash()
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}

	user, _ := mgr.ActiveUser()
	trash := TrashItems(user)
	if len(trash) != 1 || trash[0].Session.ID != fresh.ID {
		t.Errorf("wrong session survived the sweep: %+v", trash)
	}

	// The sweep runs at most once per load.
	setClock(mgr, now.Add(30*24*time.Hour))
	purged, err = mgr.PurgeExpiredTrash()
	if err != nil {
		t.Fatal(err)
	}
	if purged != 0 {
		t.Errorf("second sweep purged %d, want 0", purged)
	}
}

func TestPurgePrunesOnlyRecordsItEmptied(t *testing.T) {
	mgr := newTestManager(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	session, _ := mgr.StartSession("Shirt", 1)
	record, _ := mgr.ActiveRecord()

	setClock(mgr, now.Add(-8*24*time.Hour))
	if err := mgr.ArchiveSessions([]models.SessionToDelete{{RecordID: record.ID, SessionID: session.ID}}); err != nil {
		t.Fatal(err)
	}

	// An empty record created independently of the sweep must survive it.
	setClock(mgr, now)
	if err := mgr.ChangeDate("2025-06-10"); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.PurgeExpiredTrash(); err != nil {
		t.Fatal(err)
	}

	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 1 {
		t.Fatalf("records after sweep = %d, want only the untouched empty record", len(user.DailyRecords))
	}
	if user.DailyRecords[0].ID == record.ID {
		t.Error("record emptied by the sweep was not pruned")
	}
}

func TestChangeDate(t *testing.T) {
	mgr := newTestManager(t)
	setClock(mgr, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	if err := mgr.EnsureActiveRecord(); err != nil {
		t.Fatal(err)
	}
	today, _ := mgr.ActiveRecord()

	// Same date is a no-op.
	if err := mgr.ChangeDate(today.Date); err != nil {
		t.Fatal(err)
	}
	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 1 {
		t.Fatalf("no-op date change created a record")
	}

	// A new date creates an empty record and activates it.
	if err := mgr.ChangeDate("2025-06-08"); err != nil {
		t.Fatal(err)
	}
	record, ok := mgr.ActiveRecord()
	if !ok || record.Date != "2025-06-08" {
		t.Fatalf("active record date = %q, want 2025-06-08", record.Date)
	}

	// Switching back reuses the existing record.
	if err := mgr.ChangeDate(today.Date); err != nil {
		t.Fatal(err)
	}
	user, _ = mgr.ActiveUser()
	if len(user.DailyRecords) != 2 {
		t.Errorf("records = %d, want 2 (no duplicate for an existing date)", len(user.DailyRecords))
	}
	record, _ = mgr.ActiveRecord()
	if record.ID != today.ID {
		t.Errorf("existing record was not reactivated")
	}
}

func TestRecordsSortedNewestFirst(t *testing.T) {
	mgr := newTestManager(t)
	setClock(mgr, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	for _, date := range []string{"2025-06-03", "2025-06-09", "2025-06-01"} {
		if err := mgr.ChangeDate(date); err != nil {
			t.Fatal(err)
		}
	}

	// Force a second record for an existing date: with the pointer
	// dangling, ensure creates a fresh record dated today.
	setClock(mgr, time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC))
	user, _ := mgr.ActiveUser()
	if err := mgr.UpdateUser(user.ID, func(u *models.User) {
		u.ActiveRecordID = nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := mgr.EnsureActiveRecord(); err != nil {
		t.Fatal(err)
	}

	user, _ = mgr.ActiveUser()
	sameDate := 0
	for _, r := range user.DailyRecords {
		if r.Date == "2025-06-09" {
			sameDate++
		}
	}
	if sameDate != 2 {
		t.Fatalf("records dated 2025-06-09 = %d, want 2", sameDate)
	}

	for i := 1; i < len(user.DailyRecords); i++ {
		prev, cur := user.DailyRecords[i-1], user.DailyRecords[i]
		if cur.Date > prev.Date {
			t.Fatalf("records out of order: %s before %s", prev.Date, cur.Date)
		}
		if cur.Date == prev.Date && cur.ID > prev.ID {
			t.Fatalf("same-date records out of id order: %s before %s", prev.ID, cur.ID)
		}
	}
}

func TestEnsureActiveRecordIdempotent(t *testing.T) {
	mgr := newTestManager(t)
	if err := mgr.EnsureActiveRecord(); err != nil {
		t.Fatal(err)
	}
	first, _ := mgr.ActiveRecord()

	if err := mgr.EnsureActiveRecord(); err != nil {
		t.Fatal(err)
	}
	second, _ := mgr.ActiveRecord()

	if first.ID != second.ID {
		t.Error("ensure replaced a valid active record")
	}
	user, _ := mgr.ActiveUser()
	if len(user.DailyRecords) != 1 {
		t.Errorf("records = %d, want 1", len(user.DailyRecords))
	}
}

func TestCustomCategoryDeduplication(t *testing.T) {
	mgr := newTestManager(t)
	session, _ := mgr.StartSession("Shirt", 0)

	if err := mgr.AddCustomCategory(session.ID, "Button"); err != nil {
		t.Fatal(err)
	}
	// Case-insensitive duplicates of defaults and existing customs are
	// silently declined.
	if err := mgr.AddCustomCategory(session.ID, "rework"); err != nil {
		t.Fatal(err)
	}
	if err := mgr.AddCustomCategory(session.ID, "BUTTON"); err != nil {
		t.Fatal(err)
	}

	record, _ := mgr.ActiveRecord()
	got := record.Sessions[0].CustomCategories
	if len(got) != 1 || got[0] != "Button" {
		t.Errorf("custom categories = %v, want [Button]", got)
	}
}

func TestCustomCategoriesCarryOver(t *testing.T) {
	mgr := newTestManager(t)
	first, _ := mgr.StartSession("Shirt", 0)
	if err := mgr.AddCustomCategory(first.ID, "Button"); err != nil {
		t.Fatal(err)
	}

	second, err := mgr.StartSession("Pant", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(second.CustomCategories) != 1 || second.CustomCategories[0] != "Button" {
		t.Errorf("new session categories = %v, want carried-over [Button]", second.CustomCategories)
	}
}

func TestSwitchUserKeepsDataSeparate(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.StartSession("Shirt", 2); err != nil {
		t.Fatal(err)
	}

	second, err := mgr.AddUser("Night Shift")
	if err != nil {
		t.Fatal(err)
	}

	active, _ := mgr.ActiveUser()
	if active.ID != second.ID {
		t.Fatal("new profile should become active")
	}
	if len(active.DailyRecords) != 0 {
		t.Error("new profile inherited another profile's records")
	}
}

func TestRenameUserTrimsAndIgnoresEmpty(t *testing.T) {
	mgr := newTestManager(t)
	user, _ := mgr.ActiveUser()

	if err := mgr.RenameUser(user.ID, "  Asha  "); err != nil {
		t.Fatal(err)
	}
	renamed, _ := mgr.ActiveUser()
	if renamed.Name != "Asha" {
		t.Errorf("name = %q, want %q", renamed.Name, "Asha")
	}

	if err := mgr.RenameUser(user.ID, "   "); err != nil {
		t.Fatal(err)
	}
	unchanged, _ := mgr.ActiveUser()
	if unchanged.Name != "Asha" {
		t.Errorf("blank rename changed the name to %q", unchanged.Name)
	}
}

func TestSetEarningsGoalAnchorsNow(t *testing.T) {
	mgr := newTestManager(t)
	at := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	setClock(mgr, at)

	user, _ := mgr.ActiveUser()
	if err := mgr.SetEarningsGoal(user.ID, 500); err != nil {
		t.Fatal(err)
	}

	updated, _ := mgr.ActiveUser()
	if updated.EarningsGoal != 500 {
		t.Errorf("goal = %v, want 500", updated.EarningsGoal)
	}
	if updated.EarningsStart != "2025-06-10T15:30:00.000Z" {
		t.Errorf("anchor = %q, want 2025-06-10T15:30:00.000Z", updated.EarningsStart)
	}
}
