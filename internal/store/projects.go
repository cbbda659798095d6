package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// CreateProject inserts a new project and returns its identity.
// Name is required; an empty color gets the palette default.
func (s *Store) CreateProject(ctx context.Context, p codex.Project) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, fmt.Errorf("create project: name is required")
	}
	if p.Color == "" {
		p.Color = codex.DefaultProjectColor
	}

	now := s.timestamp()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, description, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, nullable(p.Description), p.Color, now, now)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create project: last insert id: %w", err)
	}
	return id, nil
}

// GetProject retrieves one project. A missing identity yields (nil, nil).
func (s *Store) GetProject(ctx context.Context, id int64) (*codex.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, color, created_at, updated_at
		FROM projects
		WHERE id = ?
	`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, most recently modified first.
func (s *Store) ListProjects(ctx context.Context) ([]codex.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, color, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
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
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if projects == nil {
		projects = []codex.Project{}
	}

	return projects, nil
}

// ProjectPatch is a sparse field set for project updates. Description set
// to the empty string is normalized to NULL.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateProject applies a sparse partial update and rewrites the modified
// timestamp. An empty patch is a no-op.
func (s *Store) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullable(*patch.Description))
	}
	if patch.Color != nil && *patch.Color != "" {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.timestamp(), id)

	query := "UPDATE projects SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// DeleteProject removes a project. Association rows cascade; characters
// that belonged to the project are untouched.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// scanProject scans one row in project column order.
func scanProject(row rowScanner) (codex.Project, error) {
	var p codex.Project
	var description sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.Name, &description, &p.Color, &createdAt, &updatedAt); err != nil {
		return codex.Project{}, err
	}

	p.Description = text(description)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}
