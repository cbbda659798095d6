package roster

import (
	"context"
	"sync"
	"time"

	"github.com/lorekeep/lorekeep/internal/store"
)

// SaveState is the autosave machine state.
type SaveState int

const (
	StateClean SaveState = iota
	StateDirty
	StateSaving
	StateError
)

// DefaultDebounce coalesces rapid-fire edits on the same character into a
// single batched update.
const DefaultDebounce = 500 * time.Millisecond

// Autosaver debounces partial updates for one character. Rapid edits merge
// into a single pending patch carrying only the changed field set; the
// patch flushes after the debounce window, or synchronously on Flush/Close.
// Pending edits are never dropped on entity switch - Close flushes first.
type Autosaver struct {
	mu sync.Mutex

	store       *store.Store
	characterID int64
	interval    time.Duration

	pending store.CharacterPatch
	state   SaveState
	lastErr error
	timer   *time.Timer
	closed  bool
}

// NewAutosaver creates an autosaver for one character. interval <= 0 uses
// DefaultDebounce.
func NewAutosaver(st *store.Store, characterID int64, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Autosaver{
		store:       st,
		characterID: characterID,
		interval:    interval,
		state:       StateClean,
	}
}

// Queue merges a patch into the pending set and (re)arms the debounce
// timer. Later values for the same field win.
func (a *Autosaver) Queue(patch store.CharacterPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	a.pending.Merge(patch)
	a.state = StateDirty

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, func() {
		// Timer flushes run against a background context; there is no UI
		// action to inherit one from.
		_ = a.Flush(context.Background())
	})
}

// Flush writes the pending patch synchronously. A clean state is a no-op.
// On failure the pending fields are retained and the state becomes
// StateError so a later flush can retry.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateDirty && a.state != StateError {
		a.mu.Unlock()
		return nil
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	patch := a.pending
	a.pending = store.CharacterPatch{}
	a.state = StateSaving
	a.mu.Unlock()

	err := a.store.UpdateCharacter(ctx, a.characterID, patch)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		// Put the failed fields back under anything queued meanwhile so a
		// retry carries both; newer edits win on overlap.
		queued := a.pending
		a.pending = patch
		a.pending.Merge(queued)
		a.state = StateError
		a.lastErr = err
		return err
	}
	a.lastErr = nil
	if a.pending.Empty() {
		a.state = StateClean
	} else {
		a.state = StateDirty
	}
	return nil
}

// Close flushes any pending patch and stops the timer. Further Queue calls
// are ignored.
func (a *Autosaver) Close(ctx context.Context) error {
	err := a.Flush(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.closed = true
	return err
}

// State returns the current machine state.
func (a *Autosaver) State() SaveState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the last flush error, if the machine is in StateError.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
