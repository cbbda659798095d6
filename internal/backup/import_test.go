package backup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep/internal/codex"
)

func TestImport_CreatesEntities(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	doc := &Document{
		Projects:   []codex.Project{{Name: "Saga"}},
		Tags:       []codex.Tag{{Name: "lead"}},
		Characters: []codex.Character{{Name: "Imported One"}, {Name: "Imported Two"}},
	}

	result, err := Import(ctx, st, doc)
	require.NoError(t, err)

	assert.Equal(t, Counts{Imported: 1}, result.Projects)
	assert.Equal(t, Counts{Imported: 1}, result.Tags)
	assert.Equal(t, Counts{Imported: 2}, result.Characters)

	characters, err := st.ListCharacters(ctx, true)
	require.NoError(t, err)
	assert.Len(t, characters, 2)
}

func TestImport_SkipsExistingNamesCaseInsensitive(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	seedCharacter(t, st, "Mira Voss")
	_, err := st.CreateProject(ctx, codex.Project{Name: "Saga"})
	require.NoError(t, err)

	doc := &Document{
		Projects:   []codex.Project{{Name: "SAGA"}, {Name: "New Project"}},
		Characters: []codex.Character{{Name: "mira voss"}, {Name: "Fresh Face"}},
	}

	result, err := Import(ctx, st, doc)
	require.NoError(t, err)

	assert.Equal(t, Counts{Imported: 1, Duplicates: 1}, result.Projects)
	assert.Equal(t, Counts{Imported: 1, Duplicates: 1}, result.Characters)

	characters, err := st.ListCharacters(ctx, true)
	require.NoError(t, err)
	assert.Len(t, characters, 2, "duplicate must not create a second Mira")
}

func TestImport_DeduplicatesWithinBatch(t *testing.T) {
	st, _ := openTestStore(t)

	doc := &Document{
		Characters: []codex.Character{
			{Name: "Twin"},
			{Name: "TWIN"},
			{Name: "twin"},
		},
	}

	result, err := Import(context.Background(), st, doc)
	require.NoError(t, err)
	assert.Equal(t, Counts{Imported: 1, Duplicates: 2}, result.Characters)
}

func TestImport_CountsErrors(t *testing.T) {
	st, _ := openTestStore(t)

	// Projects require a name; a record with none fails creation. The rest
	// of the batch continues.
	doc := &Document{
		Projects: []codex.Project{{Name: "  "}, {Name: "Valid"}},
	}

	result, err := Import(context.Background(), st, doc)
	require.NoError(t, err)
	assert.Equal(t, Counts{Imported: 1, Errors: 1}, result.Projects)
}

func TestImport_DoesNotReplayAssociations(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	doc := &Document{
		Characters:        []codex.Character{{ID: 1, Name: "Solo"}},
		Projects:          []codex.Project{{ID: 1, Name: "Saga"}},
		CharacterProjects: []codex.ProjectLink{{CharacterID: 1, ProjectID: 1}},
		Relationships:     []codex.Relationship{{CharacterAID: 1, CharacterBID: 1, Type: "self"}},
	}

	_, err := Import(ctx, st, doc)
	require.NoError(t, err)

	characters, err := st.ListCharacters(ctx, true)
	require.NoError(t, err)
	require.Len(t, characters, 1)

	detail, err := st.GetCharacter(ctx, characters[0].ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Projects, "plain import recreates bare entities only")
	assert.Empty(t, detail.Relationships)
}

func TestImport_StripsDocumentIDs(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	// Occupy id 7's namespace indirectly: the document claims id 700 but the
	// store must assign its own.
	doc := &Document{Characters: []codex.Character{{ID: 700, Name: "Renumbered"}}}

	_, err := Import(ctx, st, doc)
	require.NoError(t, err)

	characters, err := st.ListCharacters(ctx, true)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.NotEqual(t, int64(700), characters[0].ID)
}

func TestImport_ExportRoundTripCounts(t *testing.T) {
	src, _ := openTestStore(t)
	ctx := context.Background()

	aria := seedCharacter(t, src, "Aria")
	seedCharacter(t, src, "Bram")
	projectID, err := src.CreateProject(ctx, codex.Project{Name: "Novel A"})
	require.NoError(t, err)
	tagID, err := src.CreateTag(ctx, codex.Tag{Name: "Hero"})
	require.NoError(t, err)
	require.NoError(t, src.AssignProject(ctx, aria, projectID))
	require.NoError(t, src.AssignTag(ctx, aria, tagID))

	doc, err := ExportAll(ctx, src)
	require.NoError(t, err)

	dst, _ := openTestStore(t)
	result, err := Import(ctx, dst, doc)
	require.NoError(t, err)

	// Entity counts reproduce exactly
	assert.Equal(t, Counts{Imported: 2}, result.Characters)
	assert.Equal(t, Counts{Imported: 1}, result.Projects)
	assert.Equal(t, Counts{Imported: 1}, result.Tags)

	// The asymmetry is deliberate: the document carries association rows,
	// plain import does not replay them.
	characters, err := dst.ListCharacters(ctx, true)
	require.NoError(t, err)
	for _, c := range characters {
		detail, err := dst.GetCharacter(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Projects)
		assert.Empty(t, detail.Tags)
	}
}

func TestImport_NamelessRecordSkippedNotRejected(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	// Through the same path the CLI takes: a document with one nameless
	// character decodes fine, and import skips the record as a duplicate
	// while the rest of the batch lands.
	doc, err := Decode([]byte(`{"characters": [{"alias": "nameless"}, {"name": "Kept"}]}`))
	require.NoError(t, err)

	result, err := Import(ctx, st, doc)
	require.NoError(t, err)
	assert.Equal(t, Counts{Imported: 1, Duplicates: 1}, result.Characters)

	characters, err := st.ListCharacters(ctx, true)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "Kept", characters[0].Name)
}

func TestImport_EmptyDocument(t *testing.T) {
	st, _ := openTestStore(t)

	result, err := Import(context.Background(), st, &Document{})
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)
}
