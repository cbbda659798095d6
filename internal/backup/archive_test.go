package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep/internal/images"
	"github.com/lorekeep/lorekeep/internal/store"
)

func testLibrary(t *testing.T) images.Library {
	t.Helper()
	lib, err := images.NewDirLibrary(t.TempDir())
	require.NoError(t, err)
	return lib
}

func TestArchive_RoundTripWithImages(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()
	srcLib := testLibrary(t)

	portrait, err := srcLib.Store([]byte("png-bytes"), ".png")
	require.NoError(t, err)
	reference, err := srcLib.Store([]byte("jpg-bytes"), ".jpg")
	require.NoError(t, err)

	id := seedCharacter(t, st, "Pictured")
	require.NoError(t, st.UpdateCharacter(ctx, id, store.CharacterPatch{
		PortraitRef:     &portrait,
		ReferenceImages: &[]string{reference},
	}))

	var buf bytes.Buffer
	report, err := WriteArchive(ctx, st, srcLib, &buf)
	require.NoError(t, err)
	assert.Empty(t, report.MissingImages)

	// Import into a fresh store and library
	dstStore, _ := openTestStore(t)
	dstLib := testLibrary(t)

	result, err := ReadArchive(ctx, dstStore, dstLib, bytes.NewReader(buf.Bytes()), int64(buf.Len()), true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Characters.Imported)

	characters, err := dstStore.ListCharacters(ctx, true)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	c := characters[0]

	require.NotEmpty(t, c.PortraitRef, "portrait reference rewritten to the new library")
	data, err := dstLib.Open(c.PortraitRef)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.Len(t, c.ReferenceImages, 1)
	data, err = dstLib.Open(c.ReferenceImages[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg-bytes"), data)
}

func TestWriteArchive_ReportsMissingImages(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()
	lib := testLibrary(t)

	id := seedCharacter(t, st, "Broken Ref")
	missing := "no-such-image.png"
	require.NoError(t, st.UpdateCharacter(ctx, id, store.CharacterPatch{PortraitRef: &missing}))

	var buf bytes.Buffer
	report, err := WriteArchive(ctx, st, lib, &buf)
	require.NoError(t, err, "missing images are skipped, never fatal")
	assert.Equal(t, []string{missing}, report.MissingImages)

	// The archive must still be readable
	dstStore, _ := openTestStore(t)
	result, err := ReadArchive(ctx, dstStore, testLibrary(t), bytes.NewReader(buf.Bytes()), int64(buf.Len()), false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Characters.Imported)

	characters, err := dstStore.ListCharacters(ctx, true)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Empty(t, characters[0].PortraitRef, "unresolvable reference is cleared")
}

func TestReadArchive_MissingDocumentEntry(t *testing.T) {
	st, _ := openTestStore(t)

	// A zip with no backup.json
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("unrelated.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadArchive(context.Background(), st, testLibrary(t), bytes.NewReader(buf.Bytes()), int64(buf.Len()), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup.json")
}
