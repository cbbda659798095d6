package store

import (
	"context"
	"fmt"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// AssignProject links a character to a project. Idempotent: assigning an
// existing pair is silently ignored (ON CONFLICT DO NOTHING).
func (s *Store) AssignProject(ctx context.Context, characterID, projectID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO character_projects (character_id, project_id)
		VALUES (?, ?)
		ON CONFLICT(character_id, project_id) DO NOTHING
	`, characterID, projectID)
	if err != nil {
		return fmt.Errorf("assign project: %w", err)
	}
	return nil
}

// RemoveProject unlinks a character from a project.
func (s *Store) RemoveProject(ctx context.Context, characterID, projectID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM character_projects WHERE character_id = ? AND project_id = ?
	`, characterID, projectID)
	if err != nil {
		return fmt.Errorf("remove project: %w", err)
	}
	return nil
}

// AssignTag links a character to a tag. Idempotent like AssignProject.
func (s *Store) AssignTag(ctx context.Context, characterID, tagID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO character_tags (character_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT(character_id, tag_id) DO NOTHING
	`, characterID, tagID)
	if err != nil {
		return fmt.Errorf("assign tag: %w", err)
	}
	return nil
}

// RemoveTag unlinks a character from a tag.
func (s *Store) RemoveTag(ctx context.Context, characterID, tagID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM character_tags WHERE character_id = ? AND tag_id = ?
	`, characterID, tagID)
	if err != nil {
		return fmt.Errorf("remove tag: %w", err)
	}
	return nil
}

// projectsForCharacter returns the projects a character belongs to.
func (s *Store) projectsForCharacter(ctx context.Context, characterID int64) ([]codex.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.color, p.created_at, p.updated_at
		FROM projects p
		JOIN character_projects cp ON cp.project_id = p.id
		WHERE cp.character_id = ?
		ORDER BY p.name ASC
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("query character projects: %w", err)
	}
	defer rows.Close()

	var projects []codex.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character projects: %w", err)
	}

	if projects == nil {
		projects = []codex.Project{}
	}

	return projects, nil
}

// tagsForCharacter returns the tags attached to a character.
func (s *Store) tagsForCharacter(ctx context.Context, characterID int64) ([]codex.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.color
		FROM tags t
		JOIN character_tags ct ON ct.tag_id = t.id
		WHERE ct.character_id = ?
		ORDER BY t.name ASC
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("query character tags: %w", err)
	}
	defer rows.Close()

	var tags []codex.Tag
	for rows.Next() {
		var t codex.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character tags: %w", err)
	}

	if tags == nil {
		tags = []codex.Tag{}
	}

	return tags, nil
}

// ReadAllProjectLinks returns every character-project association row.
// Used by export.
func (s *Store) ReadAllProjectLinks(ctx context.Context) ([]codex.ProjectLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT character_id, project_id
		FROM character_projects
		ORDER BY character_id ASC, project_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query project links: %w", err)
	}
	defer rows.Close()

	var links []codex.ProjectLink
	for rows.Next() {
		var l codex.ProjectLink
		if err := rows.Scan(&l.CharacterID, &l.ProjectID); err != nil {
			return nil, fmt.Errorf("scan project link: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project links: %w", err)
	}

	if links == nil {
		links = []codex.ProjectLink{}
	}

	return links, nil
}

// ReadAllTagLinks returns every character-tag association row. Used by
// export.
func (s *Store) ReadAllTagLinks(ctx context.Context) ([]codex.TagLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT character_id, tag_id
		FROM character_tags
		ORDER BY character_id ASC, tag_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tag links: %w", err)
	}
	defer rows.Close()

	var links []codex.TagLink
	for rows.Next() {
		var l codex.TagLink
		if err := rows.Scan(&l.CharacterID, &l.TagID); err != nil {
			return nil, fmt.Errorf("scan tag link: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag links: %w", err)
	}

	if links == nil {
		links = []codex.TagLink{}
	}

	return links, nil
}
