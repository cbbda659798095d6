package store

import (
	"context"
	"testing"
	"time"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// TestScenario_ProjectTagRelationship walks the canonical workflow: a
// project, a character assigned to it, a tag on that character, a second
// character, and a relationship between the two - then verifies the full
// resolved view from the first character's side.
func TestScenario_ProjectTagRelationship(t *testing.T) {
	s, clock := createTestStore(t)
	ctx := context.Background()

	clock.Advance(time.Second)
	projectID, err := s.CreateProject(ctx, codex.Project{Name: "Novel A"})
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}

	aria := createTestCharacter(t, s, clock, "Aria")
	if err := s.AssignProject(ctx, aria, projectID); err != nil {
		t.Fatalf("AssignProject() failed: %v", err)
	}

	tagID, err := s.CreateTag(ctx, codex.Tag{Name: "Hero"})
	if err != nil {
		t.Fatalf("CreateTag() failed: %v", err)
	}
	if err := s.AssignTag(ctx, aria, tagID); err != nil {
		t.Fatalf("AssignTag() failed: %v", err)
	}

	bram := createTestCharacter(t, s, clock, "Bram")
	if _, err := s.CreateRelationship(ctx, codex.Relationship{
		CharacterAID: aria,
		CharacterBID: bram,
		Type:         "rival",
	}); err != nil {
		t.Fatalf("CreateRelationship() failed: %v", err)
	}

	detail, err := s.GetCharacter(ctx, aria)
	if err != nil {
		t.Fatalf("GetCharacter() failed: %v", err)
	}
	if detail == nil {
		t.Fatal("GetCharacter() = nil")
	}

	if len(detail.Projects) != 1 || detail.Projects[0].Name != "Novel A" {
		t.Errorf("Projects = %v, want [Novel A]", detail.Projects)
	}
	if detail.Projects[0].Color != codex.DefaultProjectColor {
		t.Errorf("project color = %q, want palette default", detail.Projects[0].Color)
	}
	if len(detail.Tags) != 1 || detail.Tags[0].Name != "Hero" {
		t.Errorf("Tags = %v, want [Hero]", detail.Tags)
	}
	if detail.Tags[0].Color != codex.DefaultTagColor {
		t.Errorf("tag color = %q, want palette default", detail.Tags[0].Color)
	}
	if len(detail.Relationships) != 1 {
		t.Fatalf("Relationships = %v, want one", detail.Relationships)
	}
	rel := detail.Relationships[0]
	if rel.Type != "rival" || rel.Other.Name != "Bram" {
		t.Errorf("relationship = type %q other %q, want rival/Bram", rel.Type, rel.Other.Name)
	}
}
