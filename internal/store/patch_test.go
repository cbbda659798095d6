package store

import (
	"testing"

	"github.com/lorekeep/lorekeep/internal/codex"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestCharacterPatch_Empty(t *testing.T) {
	p := CharacterPatch{}
	if !p.Empty() {
		t.Error("zero patch should be empty")
	}

	p.Alias = strptr("x")
	if p.Empty() {
		t.Error("patch with a field should not be empty")
	}
}

func TestCharacterPatch_EmptyNameOnlyIsEmpty(t *testing.T) {
	// An empty name is ignored by assignments, so a patch carrying only
	// that is effectively a no-op.
	p := CharacterPatch{Name: strptr("  ")}
	if !p.Empty() {
		t.Error("whitespace-only name should leave the patch empty")
	}
}

func TestCharacterPatch_Merge_LaterFieldsWin(t *testing.T) {
	p := CharacterPatch{Alias: strptr("old"), Role: strptr("hero")}
	p.Merge(CharacterPatch{Alias: strptr("new")})

	if p.Alias == nil || *p.Alias != "new" {
		t.Errorf("Alias = %v, want new", p.Alias)
	}
	if p.Role == nil || *p.Role != "hero" {
		t.Errorf("Role = %v, untouched field must survive the merge", p.Role)
	}
}

func TestCharacterPatch_Merge_AbsentFieldsKeep(t *testing.T) {
	traits := []string{"bold"}
	p := CharacterPatch{Traits: &traits, IsFavorite: boolptr(true)}
	p.Merge(CharacterPatch{Notes: strptr("a note")})

	if p.Traits == nil || len(*p.Traits) != 1 {
		t.Errorf("Traits lost in merge: %v", p.Traits)
	}
	if p.IsFavorite == nil || !*p.IsFavorite {
		t.Errorf("IsFavorite lost in merge: %v", p.IsFavorite)
	}
	if p.Notes == nil || *p.Notes != "a note" {
		t.Errorf("Notes = %v", p.Notes)
	}
}

func TestCharacterPatch_Merge_StatBlockTransitions(t *testing.T) {
	sb := codex.NewStatBlock()

	// Set then clear: clear wins
	p := CharacterPatch{StatBlock: sb}
	p.Merge(CharacterPatch{ClearStatBlock: true})
	if p.StatBlock != nil || !p.ClearStatBlock {
		t.Errorf("clear should override a pending set: %+v", p)
	}

	// Clear then set: set wins
	p = CharacterPatch{ClearStatBlock: true}
	p.Merge(CharacterPatch{StatBlock: sb})
	if p.StatBlock == nil || p.ClearStatBlock {
		t.Errorf("set should override a pending clear: %+v", p)
	}
}
