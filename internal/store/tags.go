package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// CreateTag inserts a new tag and returns its identity. Tag names are
// unique (case-sensitive) at the storage layer; a duplicate surfaces as a
// constraint error from the engine.
func (s *Store) CreateTag(ctx context.Context, t codex.Tag) (int64, error) {
	if strings.TrimSpace(t.Name) == "" {
		return 0, fmt.Errorf("create tag: name is required")
	}
	if t.Color == "" {
		t.Color = codex.DefaultTagColor
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name, color) VALUES (?, ?)
	`, t.Name, t.Color)
	if err != nil {
		return 0, fmt.Errorf("create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create tag: last insert id: %w", err)
	}
	return id, nil
}

// GetTag retrieves one tag. A missing identity yields (nil, nil).
func (s *Store) GetTag(ctx context.Context, id int64) (*codex.Tag, error) {
	var t codex.Tag
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, color FROM tags WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]codex.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color FROM tags ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
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
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	if tags == nil {
		tags = []codex.Tag{}
	}

	return tags, nil
}

// TagPatch is a sparse field set for tag updates. Tags carry no modified
// timestamp.
type TagPatch struct {
	Name  *string
	Color *string
}

// UpdateTag applies a sparse partial update. An empty patch is a no-op.
func (s *Store) UpdateTag(ctx context.Context, id int64, patch TagPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Color != nil && *patch.Color != "" {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE tags SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// DeleteTag removes a tag. Association rows cascade; tagged characters are
// untouched.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
