package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/testutil"
)

// createTestStore creates an on-disk store in a temp directory with a manual
// clock so timestamp assertions are deterministic.
func createTestStore(t *testing.T) (*Store, *testutil.ManualClock) {
	t.Helper()
	clock := testutil.NewManualClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}

// createTestCharacter inserts a character with the given name, advancing the
// clock first so each row gets a distinct modified timestamp.
func createTestCharacter(t *testing.T, s *Store, clock *testutil.ManualClock, name string) int64 {
	t.Helper()
	clock.Advance(time.Second)
	id, err := s.CreateCharacter(context.Background(), codex.Character{Name: name})
	if err != nil {
		t.Fatalf("CreateCharacter(%q) failed: %v", name, err)
	}
	return id
}

// setRawColumn writes a raw value directly into a character column,
// bypassing the codec. Used to simulate legacy stored data.
func setRawColumn(t *testing.T, s *Store, id int64, column, value string) {
	t.Helper()
	_, err := s.db.Exec("UPDATE characters SET "+column+" = ? WHERE id = ?", value, id)
	if err != nil {
		t.Fatalf("raw update of %s failed: %v", column, err)
	}
}
