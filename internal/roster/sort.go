package roster

import (
	"sort"
	"strings"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// SortField selects the attribute a character list is ordered by.
type SortField string

const (
	SortByModified SortField = "modified"
	SortByCreated  SortField = "created"
	SortByName     SortField = "name"
	SortByRole     SortField = "role"
)

// Direction is ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Layout distinguishes the two presentation styles. Grid presentation pins
// favorited characters first regardless of the chosen sort field; table
// presentation respects pure field order. The split is intentional and
// mirrors the observed product behavior.
type Layout int

const (
	LayoutGrid Layout = iota
	LayoutTable
)

// Sort orders characters in place. Sorting happens over the fetched list on
// the consumer side; it is never pushed to storage.
func Sort(characters []codex.Character, field SortField, dir Direction, layout Layout) {
	sort.SliceStable(characters, func(i, j int) bool {
		a, b := characters[i], characters[j]

		if layout == LayoutGrid && a.IsFavorite != b.IsFavorite {
			return a.IsFavorite
		}

		less := fieldLess(a, b, field)
		if dir == Descending {
			// Equal elements must not flip under reversal.
			if less == fieldLess(b, a, field) {
				return false
			}
			return !less
		}
		return less
	})
}

// fieldLess compares two characters on the chosen field. Role may be empty;
// lexicographic comparison on the empty string is fine.
func fieldLess(a, b codex.Character, field SortField) bool {
	switch field {
	case SortByCreated:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortByName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortByRole:
		return strings.ToLower(a.Role) < strings.ToLower(b.Role)
	default:
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
}
