package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// characterColumns is the canonical column order for character selects.
// scanCharacter must stay in sync with it.
const characterColumns = `id, name, alias, age, gender, pronouns, species, role, occupation,
	height, build, hair_color, eye_color, skin_tone, distinguishing_features, appearance_notes,
	personality_summary, strengths, weaknesses, fears, desires, quirks,
	backstory, family, education, secrets,
	story_role, goals, arc_notes, notes,
	personality_traits, powers, dnd_enabled, stat_block, portrait_path, reference_images,
	is_favorite, is_archived, created_at, updated_at`

// CreateCharacter inserts a new character and returns its identity.
// An empty name gets the default; the name invariant holds from creation on.
func (s *Store) CreateCharacter(ctx context.Context, c codex.Character) (int64, error) {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = codex.DefaultCharacterName
	}

	traitsJSON, err := encodeStringList(c.Traits)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}
	powersJSON, err := encodePowers(c.Powers)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}
	imagesJSON, err := encodeStringList(c.ReferenceImages)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}
	statJSON, err := encodeStatBlock(c.StatBlock)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}

	now := s.timestamp()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO characters
		(name, alias, age, gender, pronouns, species, role, occupation,
		 height, build, hair_color, eye_color, skin_tone, distinguishing_features, appearance_notes,
		 personality_summary, strengths, weaknesses, fears, desires, quirks,
		 backstory, family, education, secrets,
		 story_role, goals, arc_notes, notes,
		 personality_traits, powers, dnd_enabled, stat_block, portrait_path, reference_images,
		 is_favorite, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?,
		        ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?)
	`,
		c.Name, nullable(c.Alias), nullable(c.Age), nullable(c.Gender), nullable(c.Pronouns),
		nullable(c.Species), nullable(c.Role), nullable(c.Occupation),
		nullable(c.Height), nullable(c.Build), nullable(c.HairColor), nullable(c.EyeColor),
		nullable(c.SkinTone), nullable(c.DistinguishingFeatures), nullable(c.AppearanceNotes),
		nullable(c.PersonalitySummary), nullable(c.Strengths), nullable(c.Weaknesses),
		nullable(c.Fears), nullable(c.Desires), nullable(c.Quirks),
		nullable(c.Backstory), nullable(c.Family), nullable(c.Education), nullable(c.Secrets),
		nullable(c.StoryRole), nullable(c.Goals), nullable(c.ArcNotes), nullable(c.Notes),
		traitsJSON, powersJSON, boolToInt(c.DndEnabled), statJSON,
		nullable(c.PortraitRef), imagesJSON,
		boolToInt(c.IsFavorite), boolToInt(c.IsArchived), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create character: last insert id: %w", err)
	}
	return id, nil
}

// GetCharacter retrieves one character with its projects, tags, and
// bidirectional relationships resolved. A missing identity yields (nil, nil),
// not an error.
func (s *Store) GetCharacter(ctx context.Context, id int64) (*codex.CharacterDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE id = ?
	`, id)

	c, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}

	detail := &codex.CharacterDetail{Character: c}

	detail.Projects, err = s.projectsForCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	detail.Tags, err = s.tagsForCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	detail.Relationships, err = s.ListRelationships(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}

	return detail, nil
}

// ListCharacters returns characters ordered by most-recently-modified first.
// Archived characters are excluded unless includeArchived is set.
func (s *Store) ListCharacters(ctx context.Context, includeArchived bool) ([]codex.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	return s.queryCharacters(ctx, query)
}

// UpdateCharacter applies a sparse partial update. Only fields present in
// the patch are written; see CharacterPatch for the empty-string-to-NULL
// normalization. The modified timestamp is rewritten whenever at least one
// field is supplied; an empty patch is a no-op.
func (s *Store) UpdateCharacter(ctx context.Context, id int64, patch CharacterPatch) error {
	sets, args, err := patch.assignments()
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.timestamp(), id)

	query := "UPDATE characters SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}

// DeleteCharacter permanently removes a character. Association rows and
// relationship rows (either endpoint) cascade. This is deliberately
// non-reversible; the archive flag is the soft alternative.
func (s *Store) DeleteCharacter(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

// SetArchived flips only the archive flag. A dedicated update path, distinct
// from general field updates, so archive transitions stay auditable.
func (s *Store) SetArchived(ctx context.Context, id int64, archived bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE characters SET is_archived = ?, updated_at = ? WHERE id = ?
	`, boolToInt(archived), s.timestamp(), id)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	return nil
}

// SetFavorite writes the caller-supplied favorite state. The caller drives
// the toggle from its in-memory value; the store only persists it.
func (s *Store) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE characters SET is_favorite = ?, updated_at = ? WHERE id = ?
	`, boolToInt(favorite), s.timestamp(), id)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// queryCharacters runs a character select and scans all rows.
func (s *Store) queryCharacters(ctx context.Context, query string, args ...any) ([]codex.Character, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	var characters []codex.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}

	// Return empty slice instead of nil
	if characters == nil {
		characters = []codex.Character{}
	}

	return characters, nil
}

// rowScanner abstracts sql.Row and sql.Rows so one scan helper serves both.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCharacter scans one row in characterColumns order and decodes the
// JSON and boolean columns.
func scanCharacter(row rowScanner) (codex.Character, error) {
	var c codex.Character
	var alias, age, gender, pronouns, species, role, occupation sql.NullString
	var height, build, hairColor, eyeColor, skinTone, features, appearance sql.NullString
	var personality, strengths, weaknesses, fears, desires, quirks sql.NullString
	var backstory, family, education, secrets sql.NullString
	var storyRole, goals, arcNotes, notes sql.NullString
	var traitsJSON, powersJSON, statJSON, portrait, imagesJSON sql.NullString
	var dndEnabled, favorite, archived int
	var createdAt, updatedAt string

	err := row.Scan(
		&c.ID, &c.Name, &alias, &age, &gender, &pronouns, &species, &role, &occupation,
		&height, &build, &hairColor, &eyeColor, &skinTone, &features, &appearance,
		&personality, &strengths, &weaknesses, &fears, &desires, &quirks,
		&backstory, &family, &education, &secrets,
		&storyRole, &goals, &arcNotes, &notes,
		&traitsJSON, &powersJSON, &dndEnabled, &statJSON, &portrait, &imagesJSON,
		&favorite, &archived, &createdAt, &updatedAt,
	)
	if err != nil {
		return codex.Character{}, err
	}

	c.Alias = text(alias)
	c.Age = text(age)
	c.Gender = text(gender)
	c.Pronouns = text(pronouns)
	c.Species = text(species)
	c.Role = text(role)
	c.Occupation = text(occupation)
	c.Height = text(height)
	c.Build = text(build)
	c.HairColor = text(hairColor)
	c.EyeColor = text(eyeColor)
	c.SkinTone = text(skinTone)
	c.DistinguishingFeatures = text(features)
	c.AppearanceNotes = text(appearance)
	c.PersonalitySummary = text(personality)
	c.Strengths = text(strengths)
	c.Weaknesses = text(weaknesses)
	c.Fears = text(fears)
	c.Desires = text(desires)
	c.Quirks = text(quirks)
	c.Backstory = text(backstory)
	c.Family = text(family)
	c.Education = text(education)
	c.Secrets = text(secrets)
	c.StoryRole = text(storyRole)
	c.Goals = text(goals)
	c.ArcNotes = text(arcNotes)
	c.Notes = text(notes)
	c.PortraitRef = text(portrait)

	c.Traits = decodeStringList(traitsJSON)
	c.Powers = decodePowers(powersJSON)
	c.ReferenceImages = decodeStringList(imagesJSON)
	c.StatBlock = decodeStatBlock(statJSON)
	c.DndEnabled = dndEnabled != 0
	c.IsFavorite = favorite != 0
	c.IsArchived = archived != 0
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)

	return c, nil
}
