package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// CreateRelationship inserts a directional A-to-B relationship row and
// returns its identity. Both endpoints must exist (foreign key constraint).
func (s *Store) CreateRelationship(ctx context.Context, r codex.Relationship) (int64, error) {
	if strings.TrimSpace(r.Type) == "" {
		return 0, fmt.Errorf("create relationship: type is required")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO relationships (character_a_id, character_b_id, relation_type, notes)
		VALUES (?, ?, ?, ?)
	`, r.CharacterAID, r.CharacterBID, r.Type, nullable(r.Notes))
	if err != nil {
		return 0, fmt.Errorf("create relationship: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create relationship: last insert id: %w", err)
	}
	return id, nil
}

// DeleteRelationship removes one relationship row by id.
func (s *Store) DeleteRelationship(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	return nil
}

// ListRelationships returns all relationships where the character is either
// endpoint, presenting the other character as the related entity regardless
// of stored direction.
func (s *Store) ListRelationships(ctx context.Context, characterID int64) ([]codex.RelatedCharacter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.relation_type, r.notes, `+prefixColumns("c", characterColumns)+`
		FROM relationships r
		JOIN characters c ON c.id = CASE
			WHEN r.character_a_id = ? THEN r.character_b_id
			ELSE r.character_a_id
		END
		WHERE r.character_a_id = ? OR r.character_b_id = ?
		ORDER BY r.id ASC
	`, characterID, characterID, characterID)
	if err != nil {
		return nil, fmt.Errorf("query relationships: %w", err)
	}
	defer rows.Close()

	var related []codex.RelatedCharacter
	for rows.Next() {
		rc, err := scanRelated(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		related = append(related, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relationships: %w", err)
	}

	if related == nil {
		related = []codex.RelatedCharacter{}
	}

	return related, nil
}

// ReadAllRelationships returns every relationship row. Used by export.
func (s *Store) ReadAllRelationships(ctx context.Context) ([]codex.Relationship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, character_a_id, character_b_id, relation_type, notes
		FROM relationships
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query all relationships: %w", err)
	}
	defer rows.Close()

	var relationships []codex.Relationship
	for rows.Next() {
		var r codex.Relationship
		var notes sql.NullString
		if err := rows.Scan(&r.ID, &r.CharacterAID, &r.CharacterBID, &r.Type, &notes); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		r.Notes = text(notes)
		relationships = append(relationships, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relationships: %w", err)
	}

	if relationships == nil {
		relationships = []codex.Relationship{}
	}

	return relationships, nil
}

// scanRelated scans a relationship row followed by the related character's
// full column set.
func scanRelated(rows *sql.Rows) (codex.RelatedCharacter, error) {
	// The character columns piggyback on scanCharacter via a wrapper that
	// strips the leading relationship columns off the scan.
	var rc codex.RelatedCharacter
	var notes sql.NullString

	wrapped := &prefixScanner{rows: rows, lead: []any{&rc.RelationshipID, &rc.Type, &notes}}
	c, err := scanCharacter(wrapped)
	if err != nil {
		return codex.RelatedCharacter{}, err
	}

	rc.Notes = text(notes)
	rc.Other = c
	return rc, nil
}

// prefixScanner prepends fixed destinations to a character scan.
type prefixScanner struct {
	rows *sql.Rows
	lead []any
}

func (p *prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append(p.lead, dest...)...)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
