package images

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DirLibrary stores images as files in a single directory. References are
// random file names; the directory layout is the entire scheme.
type DirLibrary struct {
	dir string
}

// NewDirLibrary creates the directory if needed and returns a library over
// it.
func NewDirLibrary(dir string) (*DirLibrary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &DirLibrary{dir: dir}, nil
}

// Store writes the bytes under a fresh random name and returns it.
func (l *DirLibrary) Store(data []byte, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	ref := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(l.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}

// Open reads an image's bytes. Missing or unreadable files surface as
// ErrNotFound.
func (l *DirLibrary) Open(ref string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, ref))
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", ref, err)
	}
	return data, nil
}

// Remove deletes a stored image. A missing reference is a no-op.
func (l *DirLibrary) Remove(ref string) error {
	err := os.Remove(filepath.Join(l.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image %q: %w", ref, err)
	}
	return nil
}

// Path resolves a reference to its file path.
func (l *DirLibrary) Path(ref string) string {
	return filepath.Join(l.dir, ref)
}
