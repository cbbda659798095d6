package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	// Open multiple times
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"characters", "projects", "tags", "relationships", "character_projects", "character_tags"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_AppliesAdditiveMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// powers is not in the base schema; it only exists via migration
	var count int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('characters') WHERE name = 'powers'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("pragma_table_info query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("powers column count = %d, want 1", count)
	}
}

func TestOpen_MigratesPreMigrationDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	// Build a database with the base schema only, as an older release
	// would have left it.
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s1.db.Exec("ALTER TABLE characters DROP COLUMN powers"); err != nil {
		t.Fatalf("drop column failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	var count int
	err = s2.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('characters') WHERE name = 'powers'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("pragma_table_info query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("powers column was not re-added on open")
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_SetsPragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Errorf("journal_mode: %v", err)
	}
	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Errorf("foreign_keys: %v", err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Errorf("busy_timeout: %v", err)
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	s, clock := createTestStore(t)

	raw := s.timestamp()
	parsed := parseTime(raw)
	if !parsed.Equal(clock.Now()) {
		t.Errorf("parseTime(timestamp()) = %v, want %v", parsed, clock.Now())
	}
}

func TestParseTime_EngineDefaultFormat(t *testing.T) {
	parsed := parseTime("2026-01-15 12:00:00")
	if parsed.IsZero() {
		t.Error("engine default timestamp format did not parse")
	}
	if parsed.Location() != parsed.UTC().Location() {
		t.Errorf("engine default timestamps should be read as UTC")
	}
}

func TestParseTime_Garbage(t *testing.T) {
	if !parseTime("not a time").IsZero() {
		t.Error("garbage timestamp should parse to zero time")
	}
}
