package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/stitchlog/internal/logging"
	"github.com/julianstephens/stitchlog/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stitchlog.json")
	store := New(NewJSONStore(path), logging.Discard())
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, path
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	store, path := newTestStore(t)

	data, err := store.AppData()
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Users) != 0 {
		t.Errorf("fresh store has users: %+v", data.Users)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading a fresh store created the file before any write")
	}
}

func TestInitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitchlog.json")
	store := New(NewJSONStore(path), logging.Discard())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err == nil {
		t.Error("second init did not fail")
	}
}

func TestAppDataRoundTrip(t *testing.T) {
	store, path := newTestStore(t)

	id := "u1"
	want := models.AppData{
		Users: []models.User{{
			ID:               id,
			Name:             "Asha",
			ClothTypePresets: []models.ClothTypePreset{{ID: "p1", Name: "Shirt", Rate: 2.5}},
			DailyRecords: []models.DailyRecord{{
				ID:   "r1",
				Date: "2025-06-01",
				Sessions: []models.ClothSession{{
					ID:        "s1",
					ClothType: "Shirt",
					Entries: []models.Entry{
						{ID: "e1", Timestamp: "2025-06-01T10:00:00.000Z", Counts: map[string]int{"OK": 10}},
					},
					CustomCategories: []string{"Button"},
					Rate:             2.5,
				}},
			}},
			Language: models.LanguageHinglish,
		}},
		ActiveUserID: &id,
	}

	if err := store.SaveAppData(want); err != nil {
		t.Fatal(err)
	}

	// Read through a brand-new store to prove it hit the disk.
	reopened := New(NewJSONStore(path), logging.Discard())
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := reopened.AppData()
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Users) != 1 {
		t.Fatalf("users = %d, want 1", len(got.Users))
	}
	user := got.Users[0]
	if user.Name != "Asha" || user.Language != models.LanguageHinglish {
		t.Errorf("user round trip mismatch: %+v", user)
	}
	if len(user.DailyRecords) != 1 || user.DailyRecords[0].Sessions[0].Entries[0].Counts["OK"] != 10 {
		t.Errorf("record round trip mismatch: %+v", user.DailyRecords)
	}
}

func TestCorruptAppDataFallsBackToEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	provider := store.provider
	if err := provider.Set(KeyAppData, []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	data, err := store.AppData()
	if err != nil {
		t.Fatalf("corrupt app data should not be fatal: %v", err)
	}
	if len(data.Users) != 0 {
		t.Errorf("corrupt app data produced users: %+v", data.Users)
	}
}

func TestSetupCompleteDefaultsFalse(t *testing.T) {
	store, _ := newTestStore(t)

	done, err := store.SetupComplete()
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("setup complete on a fresh store")
	}

	if err := store.SetSetupComplete(true); err != nil {
		t.Fatal(err)
	}
	done, _ = store.SetupComplete()
	if !done {
		t.Error("setup flag did not persist")
	}
}

func TestChatHistoryRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	chat := models.StoredChat{
		Timestamp: 1749000000000,
		Messages: []models.ChatMessage{
			{Role: models.ChatRoleUser, Content: "aaj kitna kamaya?"},
			{Role: models.ChatRoleModel, Content: "Asha ji, aaj ₹250 kamaya. Shabash!"},
		},
	}
	if err := store.SaveChatHistory("u1", chat); err != nil {
		t.Fatal(err)
	}

	got, found, err := store.ChatHistory("u1")
	if err != nil || !found {
		t.Fatalf("chat history not found: %v", err)
	}
	if len(got.Messages) != 2 || got.Messages[1].Role != models.ChatRoleModel {
		t.Errorf("chat round trip mismatch: %+v", got)
	}

	// Histories are per user.
	if _, found, _ := store.ChatHistory("u2"); found {
		t.Error("chat history leaked across users")
	}

	if err := store.RemoveChatHistory("u1"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.ChatHistory("u1"); found {
		t.Error("chat history still present after removal")
	}
}

func TestCorruptChatHistoryDiscarded(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.provider.Set(chatKey("u1"), []byte("not json")); err != nil {
		t.Fatal(err)
	}

	_, found, err := store.ChatHistory("u1")
	if err != nil {
		t.Fatalf("corrupt chat history should not be fatal: %v", err)
	}
	if found {
		t.Error("corrupt chat history reported as found")
	}
	// The bad value is removed so the next save starts clean.
	if _, present, _ := store.provider.Get(chatKey("u1")); present {
		t.Error("corrupt chat history left in the store")
	}
}
