package store

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestXDG sets XDG env vars to a temp directory for isolated testing.
func setupTestXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	return tmpDir
}

func TestOpenAndClose(t *testing.T) {
	tmpDir := setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Conn() == nil {
		t.Fatal("Conn() returned nil")
	}

	dbPath := filepath.Join(tmpDir, "tally", "tally.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file not created at %s: %v", dbPath, err)
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"migrations", "trackers", "activity", "kv"} {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("Table %q not found: %v", table, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer db.Close()

	if err := Migrate(db.Conn()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestWALMode(t *testing.T) {
	setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	var journalMode string
	if err := db.Conn().QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Querying journal_mode failed: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %q", journalMode)
	}
}

func TestDoubleOpen(t *testing.T) {
	setupTestXDG(t)

	db1, err := Open()
	if err != nil {
		t.Fatalf("First Open failed: %v", err)
	}
	defer db1.Close()

	db2, err := Open()
	if err != nil {
		t.Fatalf("Second Open failed: %v", err)
	}
	defer db2.Close()
}

func TestKV(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer db.Close()

	v, err := db.GetKV("missing")
	if err != nil || v != "" {
		t.Fatalf("GetKV(missing) = %q, %v", v, err)
	}

	if err := db.SetKV("backup.last_export", "2026-01-01"); err != nil {
		t.Fatalf("SetKV: %v", err)
	}
	if err := db.SetKV("backup.last_export", "2026-02-01"); err != nil {
		t.Fatalf("SetKV overwrite: %v", err)
	}
	v, err = db.GetKV("backup.last_export")
	if err != nil {
		t.Fatalf("GetKV: %v", err)
	}
	if v != "2026-02-01" {
		t.Errorf("GetKV = %q, want 2026-02-01", v)
	}
}
