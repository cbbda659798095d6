package backup

import (
	"context"
	"fmt"

	"github.com/lorekeep/lorekeep/internal/store"
)

// Restore replays a full backup into an empty store, including the
// association arrays and relationships that Import deliberately skips.
// Identities are reassigned on insert; the document's ids are remapped
// through the old-to-new tables as the association rows are replayed.
//
// Restore refuses to run against a non-empty store: full-backup restoration
// and duplicate-aware merging are separate code paths by design.
func Restore(ctx context.Context, st *store.Store, doc *Document) (*Result, error) {
	if err := ensureEmpty(ctx, st); err != nil {
		return nil, err
	}

	result := &Result{}
	projectIDs := make(map[int64]int64, len(doc.Projects))
	tagIDs := make(map[int64]int64, len(doc.Tags))
	characterIDs := make(map[int64]int64, len(doc.Characters))

	for _, p := range doc.Projects {
		fresh := p
		fresh.ID = 0
		id, err := st.CreateProject(ctx, fresh)
		if err != nil {
			result.Projects.Errors++
			continue
		}
		projectIDs[p.ID] = id
		result.Projects.Imported++
	}

	for _, t := range doc.Tags {
		fresh := t
		fresh.ID = 0
		id, err := st.CreateTag(ctx, fresh)
		if err != nil {
			result.Tags.Errors++
			continue
		}
		tagIDs[t.ID] = id
		result.Tags.Imported++
	}

	for _, c := range doc.Characters {
		fresh := c
		fresh.ID = 0
		id, err := st.CreateCharacter(ctx, fresh)
		if err != nil {
			result.Characters.Errors++
			continue
		}
		characterIDs[c.ID] = id
		result.Characters.Imported++
	}

	for _, link := range doc.CharacterProjects {
		cid, okC := characterIDs[link.CharacterID]
		pid, okP := projectIDs[link.ProjectID]
		if !okC || !okP {
			continue // dangling link in the document
		}
		if err := st.AssignProject(ctx, cid, pid); err != nil {
			return result, fmt.Errorf("restore: %w", err)
		}
	}

	for _, link := range doc.CharacterTags {
		cid, okC := characterIDs[link.CharacterID]
		tid, okT := tagIDs[link.TagID]
		if !okC || !okT {
			continue
		}
		if err := st.AssignTag(ctx, cid, tid); err != nil {
			return result, fmt.Errorf("restore: %w", err)
		}
	}

	for _, r := range doc.Relationships {
		aid, okA := characterIDs[r.CharacterAID]
		bid, okB := characterIDs[r.CharacterBID]
		if !okA || !okB {
			continue
		}
		fresh := r
		fresh.ID = 0
		fresh.CharacterAID = aid
		fresh.CharacterBID = bid
		if _, err := st.CreateRelationship(ctx, fresh); err != nil {
			return result, fmt.Errorf("restore: %w", err)
		}
	}

	return result, nil
}

// ensureEmpty verifies the store holds no entities of any kind.
func ensureEmpty(ctx context.Context, st *store.Store) error {
	characters, err := st.ListCharacters(ctx, true)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	projects, err := st.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	tags, err := st.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if len(characters) > 0 || len(projects) > 0 || len(tags) > 0 {
		return fmt.Errorf("restore requires an empty store (found %d characters, %d projects, %d tags)",
			len(characters), len(projects), len(tags))
	}
	return nil
}
