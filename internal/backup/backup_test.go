package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/storage"
	"github.com/julianstephens/nicolog/internal/storage/sqlite"
)

// setupTestDB creates an initialized SQLite store holding n records
func setupTestDB(t *testing.T, n int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nicolog.db")

	medium := sqlite.NewStore(dbPath)
	if err := medium.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer medium.Close()

	store := storage.NewLogStore(medium)
	for i := 0; i < n; i++ {
		if _, err := store.Append(models.LogRecord{Source: models.SourceSnus, Amount: 1, EstimatedMg: 8}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return dbPath
}

func countRecords(t *testing.T, dbPath string) int {
	t.Helper()
	medium := sqlite.NewStore(dbPath)
	if err := medium.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer medium.Close()
	return len(storage.NewLogStore(medium).LoadAll())
}

// steppingClock returns a clock that advances one second per call
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t, 2)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("expected backup in %s, got %s", mgr.GetBackupDir(), backupPath)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if got := countRecords(t, backupPath); got != 2 {
		t.Errorf("expected 2 records in backup, got %d", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for a missing database")
	}
}

func TestCreateBackupSameSecond(t *testing.T) {
	dbPath := setupTestDB(t, 1)

	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("first CreateBackup failed: %v", err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("second CreateBackup failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct backup paths")
	}
	if !strings.HasSuffix(second, "-1"+constants.BackupFileSuffix) {
		t.Errorf("expected counter suffix, got %s", second)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if !backups[0].Timestamp.Equal(fixed) {
		t.Errorf("expected parsed timestamp %v, got %v", fixed, backups[0].Timestamp)
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dbPath := setupTestDB(t, 1)

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	// Foreign files are ignored
	os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600)
	os.WriteFile(filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"garbage"+constants.BackupFileSuffix), []byte("x"), 0600)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nicolog.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t, 1)

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	// The oldest backups are the ones removed
	oldestKept := time.Date(2024, 1, 1, 0, 0, 3, 0, time.Local)
	if !backups[len(backups)-1].Timestamp.Equal(oldestKept) {
		t.Errorf("expected oldest kept backup at %v, got %v", oldestKept, backups[len(backups)-1].Timestamp)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t, 2)

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Add more records after the backup
	medium := sqlite.NewStore(dbPath)
	if err := medium.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	store := storage.NewLogStore(medium)
	store.Append(models.LogRecord{Source: models.SourceNone})
	medium.Close()
	if got := countRecords(t, dbPath); got != 3 {
		t.Fatalf("expected 3 records before restore, got %d", got)
	}

	safetyCopy, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if got := countRecords(t, dbPath); got != 2 {
		t.Errorf("expected 2 records after restore, got %d", got)
	}
	if safetyCopy == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if got := countRecords(t, safetyCopy); got != 3 {
		t.Errorf("expected safety copy to hold 3 records, got %d", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("expected temporary restore file to be removed")
	}
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected invalid backup to be rejected")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected missing backup to be rejected")
	}
	if got := countRecords(t, dbPath); got != 1 {
		t.Errorf("expected database to be unchanged, got %d records", got)
	}
}

func TestJSONStoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nicolog.json")
	medium := storage.NewJSONStore(path)
	if err := medium.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store := storage.NewLogStore(medium)
	if _, err := store.Append(models.LogRecord{Source: models.SourceNone}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected a .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	reloaded := storage.NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(storage.NewLogStore(reloaded).LoadAll()); got != 1 {
		t.Errorf("expected 1 record after restore, got %d", got)
	}
}
