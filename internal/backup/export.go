package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
)

// ExportAll returns the complete unfiltered contents of every table -
// archived characters included - plus both association tables. Suitable for
// full backup and restore.
func ExportAll(ctx context.Context, st *store.Store) (*Document, error) {
	doc := &Document{}
	var err error

	doc.Characters, err = st.ListCharacters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc.Projects, err = st.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc.Tags, err = st.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc.Relationships, err = st.ReadAllRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc.CharacterProjects, err = st.ReadAllProjectLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc.CharacterTags, err = st.ReadAllTagLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return doc, nil
}

// ExportCharacter returns one character's full decoded field set with the
// identity and timestamp fields stripped, so re-importing it creates a
// fresh row rather than colliding. A missing id yields (nil, nil).
func ExportCharacter(ctx context.Context, st *store.Store, id int64) (*codex.Character, error) {
	detail, err := st.GetCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("export character: %w", err)
	}
	if detail == nil {
		return nil, nil
	}

	c := detail.Character
	c.ID = 0
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	return &c, nil
}
