package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// searchFields returns the secondary text fields a search probes after the
// name: alias, role, occupation, backstory, appearance notes, and each
// personality trait.
func searchFields(c *codex.Character) []string {
	fields := []string{c.Alias, c.Role, c.Occupation, c.Backstory, c.AppearanceNotes}
	return append(fields, c.Traits...)
}

// SearchCharacters performs a case-insensitive substring search across
// name, alias, role, occupation, backstory, appearance notes, and the
// personality traits. Both sides fold through codex.FoldName in Go:
// SQLite's lower() handles only ASCII, so an in-SQL match would miss a
// name like "Émile" even for its exact spelling. Name matches rank before
// other-field matches; most-recently-modified breaks ties. Archived
// characters are excluded unless includeArchived is set. An empty query
// behaves like a plain list.
func (s *Store) SearchCharacters(ctx context.Context, query string, includeArchived bool) ([]codex.Character, error) {
	needle := codex.FoldName(query)
	if needle == "" {
		return s.ListCharacters(ctx, includeArchived)
	}

	all, err := s.ListCharacters(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("search characters: %w", err)
	}

	// ListCharacters is already in recency order; a stable partition keeps
	// that order within each rank.
	nameHits := make([]codex.Character, 0, len(all))
	var fieldHits []codex.Character
	for _, c := range all {
		if strings.Contains(codex.FoldName(c.Name), needle) {
			nameHits = append(nameHits, c)
			continue
		}
		for _, field := range searchFields(&c) {
			if field != "" && strings.Contains(codex.FoldName(field), needle) {
				fieldHits = append(fieldHits, c)
				break
			}
		}
	}
	return append(nameHits, fieldHits...), nil
}

// ListByProject returns the characters associated with a project, with the
// default archive-visibility rule and recency ordering.
func (s *Store) ListByProject(ctx context.Context, projectID int64, includeArchived bool) ([]codex.Character, error) {
	stmt := `SELECT ` + prefixColumns("c", characterColumns) + `
		FROM characters c
		JOIN character_projects cp ON cp.character_id = c.id
		WHERE cp.project_id = ?`
	if !includeArchived {
		stmt += ` AND c.is_archived = 0`
	}
	stmt += ` ORDER BY c.updated_at DESC, c.id DESC`

	characters, err := s.queryCharacters(ctx, stmt, projectID)
	if err != nil {
		return nil, fmt.Errorf("list by project: %w", err)
	}
	return characters, nil
}

// ListByTags returns only the characters associated with all of the given
// tags: a logical AND across the selected set, implemented as a grouped
// count-match rather than a simple join. An empty tag set yields an empty
// result, not all characters.
func (s *Store) ListByTags(ctx context.Context, tagIDs []int64, includeArchived bool) ([]codex.Character, error) {
	if len(tagIDs) == 0 {
		return []codex.Character{}, nil
	}

	// Repeated ids must not inflate the required match count.
	seen := make(map[int64]struct{}, len(tagIDs))
	unique := make([]int64, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	tagIDs = unique

	placeholders := make([]string, len(tagIDs))
	args := make([]any, 0, len(tagIDs)+1)
	for i, id := range tagIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	stmt := `SELECT ` + prefixColumns("c", characterColumns) + `
		FROM characters c
		JOIN character_tags ct ON ct.character_id = c.id
		WHERE ct.tag_id IN (` + strings.Join(placeholders, ", ") + `)`
	if !includeArchived {
		stmt += ` AND c.is_archived = 0`
	}
	stmt += `
		GROUP BY c.id
		HAVING COUNT(DISTINCT ct.tag_id) = ?
		ORDER BY c.updated_at DESC, c.id DESC`
	args = append(args, len(tagIDs))

	characters, err := s.queryCharacters(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list by tags: %w", err)
	}
	return characters, nil
}
