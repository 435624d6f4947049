package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newJSONStoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habita.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

func TestCreate_CopiesStoreFile(t *testing.T) {
	storePath := newJSONStoreFile(t, `{"version":1}`)
	mgr := NewManager(storePath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want it under %s", backupPath, mgr.BackupDir())
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, ".json") {
		t.Errorf("backup name %s lacks the expected prefix/suffix", name)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %q", data)
	}
}

func TestCreate_MissingStoreFails(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habita.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create without a store file succeeded, want error")
	}
}

func TestList_NewestFirst(t *testing.T) {
	storePath := newJSONStoreFile(t, `{}`)
	mgr := NewManager(storePath)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}

	for _, stamp := range []string{"20250101-080000", "20250301-080000", "20250201-080000"} {
		name := FilePrefix + stamp + ".json"
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatalf("failed to write backup fixture: %v", err)
		}
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(mgr.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List returned %d backups, want 3", len(backups))
	}
	if !strings.Contains(backups[0].Path, "20250301") {
		t.Errorf("newest backup first, got %s", backups[0].Path)
	}
	if !strings.Contains(backups[2].Path, "20250101") {
		t.Errorf("oldest backup last, got %s", backups[2].Path)
	}
}

func TestList_EmptyWithoutBackupDir(t *testing.T) {
	mgr := NewManager(newJSONStoreFile(t, `{}`))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List returned %d backups, want 0", len(backups))
	}
}

func TestCreate_RotatesOldBackups(t *testing.T) {
	storePath := newJSONStoreFile(t, `{}`)
	mgr := NewManager(storePath)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}

	// Seed more than the retention limit with old timestamps.
	for i := 0; i < MaxBackups+5; i++ {
		name := fmt.Sprintf("%s2024%02d%02d-080000.json", FilePrefix, i/28+1, i%28+1)
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatalf("failed to write backup fixture: %v", err)
		}
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("after rotation %d backups remain, want %d", len(backups), MaxBackups)
	}
	// The fresh backup sorts newest and survives rotation.
	if strings.Contains(filepath.Base(backups[0].Path), "2024") {
		t.Errorf("newest backup is a seeded fixture: %s", backups[0].Path)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	storePath := newJSONStoreFile(t, `{"state":"good"}`)
	mgr := NewManager(storePath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := os.WriteFile(storePath, []byte(`{"state":"clobbered"}`), 0600); err != nil {
		t.Fatalf("failed to overwrite store: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if string(data) != `{"state":"good"}` {
		t.Errorf("restored content = %q, want the backed-up state", data)
	}

	// The pre-restore state was itself backed up before being replaced.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	foundClobbered := false
	for _, b := range backups {
		content, err := os.ReadFile(b.Path)
		if err != nil {
			t.Fatalf("failed to read backup %s: %v", b.Path, err)
		}
		if string(content) == `{"state":"clobbered"}` {
			foundClobbered = true
		}
	}
	if !foundClobbered {
		t.Error("pre-restore store state was not backed up")
	}
}

func TestRestore_RejectsMissingAndEmptyBackups(t *testing.T) {
	storePath := newJSONStoreFile(t, `{}`)
	mgr := NewManager(storePath)

	if err := mgr.Restore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Restore of missing backup succeeded, want error")
	}

	empty := filepath.Join(t.TempDir(), "habita-20250101-080000.json")
	if err := os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatalf("failed to write empty backup: %v", err)
	}
	if err := mgr.Restore(empty); err == nil {
		t.Error("Restore of empty backup succeeded, want error")
	}
}
