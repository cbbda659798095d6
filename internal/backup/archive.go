package backup

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/lorekeep/lorekeep/internal/images"
	"github.com/lorekeep/lorekeep/internal/store"
)

// Archive container layout: one backup.json entry plus an images/ folder.
// Portrait and reference-image references are rewritten to container-
// relative paths on export and back to library references on import.
const (
	archiveDocumentName = "backup.json"
	archiveImageDir     = "images/"
)

// ArchiveReport lists image references that could not be resolved during an
// archive operation. Missing images are logged and skipped, never fatal to
// the archive as a whole.
type ArchiveReport struct {
	MissingImages []string
}

// WriteArchive exports the full dataset plus its image files as a zip
// container.
func WriteArchive(ctx context.Context, st *store.Store, lib images.Library, w io.Writer) (*ArchiveReport, error) {
	doc, err := ExportAll(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}

	report := &ArchiveReport{}
	zw := zip.NewWriter(w)

	// Collect each referenced image once, then rewrite the references in
	// the document copy that lands in the container.
	packed := map[string]bool{}
	packImage := func(ref string) (string, bool) {
		if ref == "" {
			return "", false
		}
		entry := archiveImageDir + ref
		if packed[ref] {
			return entry, true
		}
		data, err := lib.Open(ref)
		if errors.Is(err, images.ErrNotFound) {
			report.MissingImages = append(report.MissingImages, ref)
			return "", false
		}
		if err != nil {
			return "", false
		}
		f, err := zw.Create(entry)
		if err != nil {
			return "", false
		}
		if _, err := f.Write(data); err != nil {
			return "", false
		}
		packed[ref] = true
		return entry, true
	}

	for i := range doc.Characters {
		c := &doc.Characters[i]
		if entry, ok := packImage(c.PortraitRef); ok {
			c.PortraitRef = entry
		} else if c.PortraitRef != "" {
			c.PortraitRef = ""
		}
		var kept []string
		for _, ref := range c.ReferenceImages {
			if entry, ok := packImage(ref); ok {
				kept = append(kept, entry)
			}
		}
		c.ReferenceImages = kept
	}

	data, err := Encode(doc)
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("write archive: %w", err)
	}
	f, err := zw.Create(archiveDocumentName)
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("write archive: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("write archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}
	return report, nil
}

// ReadArchive imports a zip container: images are physically copied into
// the local library (not referenced in place), character image paths are
// rewritten to the new references, and the document is then applied with
// Import semantics - or Restore semantics when full is set.
func ReadArchive(ctx context.Context, st *store.Store, lib images.Library, r io.ReaderAt, size int64, full bool) (*Result, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	var docData []byte
	refs := map[string]string{} // container entry -> new library ref
	for _, f := range zr.File {
		switch {
		case f.Name == archiveDocumentName:
			docData, err = readZipFile(f)
			if err != nil {
				return nil, fmt.Errorf("read archive: %w", err)
			}
		case strings.HasPrefix(f.Name, archiveImageDir) && !f.FileInfo().IsDir():
			data, err := readZipFile(f)
			if err != nil {
				return nil, fmt.Errorf("read archive: %w", err)
			}
			ref, err := lib.Store(data, path.Ext(f.Name))
			if err != nil {
				return nil, fmt.Errorf("read archive: %w", err)
			}
			refs[f.Name] = ref
		}
	}
	if docData == nil {
		return nil, fmt.Errorf("read archive: no %s entry", archiveDocumentName)
	}

	doc, err := Decode(docData)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	rewriteImageRefs(doc, refs)

	if full {
		return Restore(ctx, st, doc)
	}
	return Import(ctx, st, doc)
}

// rewriteImageRefs swaps container-relative paths for the freshly stored
// library references. Entries without a stored image are cleared.
func rewriteImageRefs(doc *Document, refs map[string]string) {
	for i := range doc.Characters {
		c := &doc.Characters[i]
		c.PortraitRef = refs[c.PortraitRef]
		var kept []string
		for _, entry := range c.ReferenceImages {
			if ref, ok := refs[entry]; ok {
				kept = append(kept, ref)
			}
		}
		c.ReferenceImages = kept
	}
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
