package backup

import (
	"context"
	"fmt"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
)

// Import creates the document's projects, tags, and characters in that
// fixed order, de-duplicating by case-insensitive name against both the
// existing store contents and earlier records in the same batch.
//
// Import recreates bare entities only: association rows and relationships
// in the document are not replayed (use Restore for that). Records are
// created independently, not in one transaction - a mid-batch failure
// leaves prior creations committed, and the per-kind counts report it.
func Import(ctx context.Context, st *store.Store, doc *Document) (*Result, error) {
	result := &Result{}

	existing, err := st.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	seen := nameSet()
	for _, p := range existing {
		seen.add(p.Name)
	}
	for _, p := range doc.Projects {
		importOne(&result.Projects, seen, p.Name, func() error {
			_, err := st.CreateProject(ctx, codex.Project{
				Name:        p.Name,
				Description: p.Description,
				Color:       p.Color,
			})
			return err
		})
	}

	tags, err := st.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	seen = nameSet()
	for _, t := range tags {
		seen.add(t.Name)
	}
	for _, t := range doc.Tags {
		importOne(&result.Tags, seen, t.Name, func() error {
			_, err := st.CreateTag(ctx, codex.Tag{Name: t.Name, Color: t.Color})
			return err
		})
	}

	characters, err := st.ListCharacters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	seen = nameSet()
	for _, c := range characters {
		seen.add(c.Name)
	}
	for _, c := range doc.Characters {
		importOne(&result.Characters, seen, c.Name, func() error {
			fresh := c
			fresh.ID = 0
			_, err := st.CreateCharacter(ctx, fresh)
			return err
		})
	}

	return result, nil
}

// importOne applies the skip/create/count rules for a single record. A
// missing or already-seen name counts as a duplicate; a creation failure
// counts as an error; otherwise the name joins the seen set so later
// same-batch duplicates are caught too.
func importOne(counts *Counts, seen names, name string, create func() error) {
	if name == "" || seen.has(name) {
		counts.Duplicates++
		return
	}
	if err := create(); err != nil {
		counts.Errors++
		return
	}
	seen.add(name)
	counts.Imported++
}

// names is a case-insensitive name set.
type names map[string]struct{}

func nameSet() names { return names{} }

func (n names) add(name string) { n[codex.FoldName(name)] = struct{}{} }

func (n names) has(name string) bool {
	_, ok := n[codex.FoldName(name)]
	return ok
}
