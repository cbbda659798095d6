// Package images is the image storage collaborator. The core stores only
// the opaque reference strings issued here; it never interprets image bytes.
package images

import "errors"

// ErrNotFound signals a reference that resolves to no stored image. It is
// an explicit signal, not a failure: export paths log and continue, they do
// not abort.
var ErrNotFound = errors.New("image not found")

// Library manages image files referenced by characters.
type Library interface {
	// Store persists image bytes and returns a stable reference.
	Store(data []byte, ext string) (string, error)
	// Open reads an image's bytes given its reference. A missing or
	// unreadable image returns ErrNotFound.
	Open(ref string) ([]byte, error)
	// Remove deletes a stored image. Removing a missing reference is a
	// no-op.
	Remove(ref string) error
	// Path resolves a reference to its local storage path.
	Path(ref string) string
}
