package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stitchlog.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"data":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndListBackups(t *testing.T) {
	path := newTestStore(t)
	mgr := NewManager(path)

	created, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(created), BackupFilePrefix) {
		t.Errorf("backup name = %q, missing prefix", filepath.Base(created))
	}
	if filepath.Ext(created) != ".json" {
		t.Errorf("backup ext = %q, want the store's extension", filepath.Ext(created))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %d, want 1", len(backups))
	}
	if backups[0].Path != created {
		t.Errorf("listed path = %q, want %q", backups[0].Path, created)
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for a missing store file")
	}
}

func TestCreateBackupUniqueNames(t *testing.T) {
	path := newTestStore(t)
	mgr := NewManager(path)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		created, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		if seen[created] {
			t.Fatalf("duplicate backup path: %s", created)
		}
		seen[created] = true
	}
}

func TestRestoreBackup(t *testing.T) {
	path := newTestStore(t)
	mgr := NewManager(path)

	created, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the live store, then restore.
	if err := os.WriteFile(path, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(created); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1,"data":{}}` {
		t.Errorf("restored content = %q", data)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	mgr := NewManager(newTestStore(t))
	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for a missing backup file")
	}
}
