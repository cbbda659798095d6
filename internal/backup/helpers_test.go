package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
	"github.com/lorekeep/lorekeep/internal/testutil"
)

// openTestStore opens a store with a pinned clock so exported timestamps are
// reproducible.
func openTestStore(t *testing.T) (*store.Store, *testutil.ManualClock) {
	t.Helper()
	clock := testutil.NewManualClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), store.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, clock
}

func seedCharacter(t *testing.T, st *store.Store, name string) int64 {
	t.Helper()
	id, err := st.CreateCharacter(context.Background(), codex.Character{Name: name})
	require.NoError(t, err)
	return id
}
