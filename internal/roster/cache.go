// Package roster is the consumer side of the data layer: the application
// state cache holding the last-fetched entity lists and the selected
// character, consumer-side sorting, and the debounced autosave machinery.
package roster

import (
	"context"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
)

// Cache holds the last-fetched entity lists and the currently-selected
// character with its resolved relations. It re-fetches after every mutation
// rather than patching incrementally; the store pushes no change
// notifications.
//
// Single-threaded by design: one UI action at a time, like the store.
type Cache struct {
	store *store.Store

	Characters      []codex.Character
	Projects        []codex.Project
	Tags            []codex.Tag
	Selected        *codex.CharacterDetail
	IncludeArchived bool
}

// NewCache wraps a store handle. The handle is owned by the process entry
// point; the cache only borrows it.
func NewCache(st *store.Store) *Cache {
	return &Cache{store: st}
}

// RefreshCharacters re-fetches the character list with the cache's archive
// visibility setting.
func (c *Cache) RefreshCharacters(ctx context.Context) error {
	characters, err := c.store.ListCharacters(ctx, c.IncludeArchived)
	if err != nil {
		return err
	}
	c.Characters = characters
	return nil
}

// RefreshProjects re-fetches the project list.
func (c *Cache) RefreshProjects(ctx context.Context) error {
	projects, err := c.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	c.Projects = projects
	return nil
}

// RefreshTags re-fetches the tag list.
func (c *Cache) RefreshTags(ctx context.Context) error {
	tags, err := c.store.ListTags(ctx)
	if err != nil {
		return err
	}
	c.Tags = tags
	return nil
}

// Select loads a character with its relations and makes it current.
// Selecting a missing id clears the selection.
func (c *Cache) Select(ctx context.Context, id int64) error {
	detail, err := c.store.GetCharacter(ctx, id)
	if err != nil {
		return err
	}
	c.Selected = detail
	return nil
}

// ReselectAndRefresh re-resolves the current selection and the character
// list after a mutation.
func (c *Cache) ReselectAndRefresh(ctx context.Context) error {
	if c.Selected != nil {
		if err := c.Select(ctx, c.Selected.ID); err != nil {
			return err
		}
	}
	return c.RefreshCharacters(ctx)
}

// ToggleFavorite persists the opposite of the cached favorite state. The
// caller-driven read-modify-write is deliberate: the store persists whatever
// state the consumer supplies.
func (c *Cache) ToggleFavorite(ctx context.Context, id int64) error {
	current := false
	for _, ch := range c.Characters {
		if ch.ID == id {
			current = ch.IsFavorite
			break
		}
	}
	if err := c.store.SetFavorite(ctx, id, !current); err != nil {
		return err
	}
	return c.ReselectAndRefresh(ctx)
}
