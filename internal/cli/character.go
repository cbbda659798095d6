package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/roster"
	"github.com/lorekeep/lorekeep/internal/store"
)

// characterFlags are the text fields settable from the command line. Each
// maps one flag to one patch slot; the same set serves add and update.
type characterFlags struct {
	name       string
	alias      string
	role       string
	occupation string
	species    string
	backstory  string
	notes      string
	traits     []string
	favorite   bool
	dnd        bool
}

func (f *characterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.alias, "alias", "", "alias or nickname")
	cmd.Flags().StringVar(&f.role, "role", "", "story role (protagonist, villain, ...)")
	cmd.Flags().StringVar(&f.occupation, "occupation", "", "occupation")
	cmd.Flags().StringVar(&f.species, "species", "", "species")
	cmd.Flags().StringVar(&f.backstory, "backstory", "", "backstory")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&f.traits, "trait", nil, "personality trait (repeatable)")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "mark as favorite")
	cmd.Flags().BoolVar(&f.dnd, "dnd", false, "enable the D&D stat block")
}

// patch converts the changed flags into a sparse update. Unchanged flags
// stay out of the patch entirely.
func (f *characterFlags) patch(cmd *cobra.Command) store.CharacterPatch {
	var p store.CharacterPatch
	set := func(name string, dst **string, v *string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &p.Name, &f.name)
	set("alias", &p.Alias, &f.alias)
	set("role", &p.Role, &f.role)
	set("occupation", &p.Occupation, &f.occupation)
	set("species", &p.Species, &f.species)
	set("backstory", &p.Backstory, &f.backstory)
	set("notes", &p.Notes, &f.notes)
	if cmd.Flags().Changed("trait") {
		p.Traits = &f.traits
	}
	if cmd.Flags().Changed("favorite") {
		p.IsFavorite = &f.favorite
	}
	if cmd.Flags().Changed("dnd") {
		p.DndEnabled = &f.dnd
		if f.dnd {
			p.StatBlock = codex.NewStatBlock()
		}
	}
	return p
}

// NewCharacterCommand creates the character command tree.
func NewCharacterCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage characters",
	}
	cmd.AddCommand(newCharacterAdd(opts))
	cmd.AddCommand(newCharacterList(opts))
	cmd.AddCommand(newCharacterShow(opts))
	cmd.AddCommand(newCharacterUpdate(opts))
	cmd.AddCommand(newCharacterDelete(opts))
	cmd.AddCommand(newCharacterArchive(opts, true))
	cmd.AddCommand(newCharacterArchive(opts, false))
	cmd.AddCommand(newCharacterFavorite(opts, true))
	cmd.AddCommand(newCharacterFavorite(opts, false))
	cmd.AddCommand(newCharacterSearch(opts))
	cmd.AddCommand(newCharacterPower(opts))
	return cmd
}

func newCharacterAdd(opts *RootOptions) *cobra.Command {
	flags := &characterFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			c := codex.Character{
				Name:       flags.name,
				Alias:      flags.alias,
				Role:       flags.role,
				Occupation: flags.occupation,
				Species:    flags.species,
				Backstory:  flags.backstory,
				Notes:      flags.notes,
				Traits:     flags.traits,
				IsFavorite: flags.favorite,
				DndEnabled: flags.dnd,
			}
			if flags.dnd {
				c.StatBlock = codex.NewStatBlock()
			}

			id, err := st.CreateCharacter(cmd.Context(), c)
			if err != nil {
				return WrapExitError(ExitCommandError, "create character", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "created character %d", id)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCharacterList(opts *RootOptions) *cobra.Command {
	var (
		archived  bool
		projectID int64
		tagIDs    []int64
		sortField string
		desc      bool
		grid      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			var characters []codex.Character
			switch {
			case projectID != 0:
				characters, err = st.ListByProject(ctx, projectID, archived)
			case len(tagIDs) > 0:
				characters, err = st.ListByTags(ctx, tagIDs, archived)
			default:
				characters, err = st.ListCharacters(ctx, archived)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "list characters", err)
			}

			layout := roster.LayoutTable
			if grid {
				layout = roster.LayoutGrid
			}
			dir := roster.Ascending
			if desc || !cmd.Flags().Changed("sort") {
				dir = roster.Descending
			}
			roster.Sort(characters, roster.SortField(sortField), dir, layout)

			f := opts.formatter(cmd)
			if f.Format == "json" {
				return f.Success(characters)
			}
			for _, c := range characters {
				printCharacterLine(f, c)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "include archived characters")
	cmd.Flags().Int64Var(&projectID, "project", 0, "filter by project id")
	cmd.Flags().Int64SliceVar(&tagIDs, "tag", nil, "filter by tag id; repeat for all-of semantics")
	cmd.Flags().StringVar(&sortField, "sort", string(roster.SortByModified), "sort field (modified|created|name|role)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().BoolVar(&grid, "grid", false, "grid presentation (pins favorites first)")
	return cmd
}

func newCharacterShow(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a character with its projects, tags, and relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			detail, err := st.GetCharacter(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get character", err)
			}
			f := opts.formatter(cmd)
			if detail == nil {
				f.Error(ErrCodeNotFound, fmt.Sprintf("character %d not found", id), nil)
				return NewExitError(ExitFailure, "not found")
			}
			if f.Format == "json" {
				return f.Success(detail)
			}
			printCharacterDetail(f, detail)
			return nil
		},
	}
}

func newCharacterUpdate(opts *RootOptions) *cobra.Command {
	flags := &characterFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update supplied fields only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			patch := flags.patch(cmd)
			if patch.Empty() {
				return NewExitError(ExitCommandError, "no fields supplied")
			}
			if err := st.UpdateCharacter(cmd.Context(), id, patch); err != nil {
				return WrapExitError(ExitCommandError, "update character", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "updated character %d", id)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCharacterDelete(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a character (cannot be undone; consider archive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteCharacter(cmd.Context(), id); err != nil {
				return WrapExitError(ExitCommandError, "delete character", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "deleted character %d", id)
		},
	}
}

func newCharacterArchive(opts *RootOptions, archive bool) *cobra.Command {
	use, verb, short := "archive", "archived", "Archive a character (soft, reversible)"
	if !archive {
		use, verb, short = "unarchive", "unarchived", "Restore an archived character"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetArchived(cmd.Context(), id, archive); err != nil {
				return WrapExitError(ExitCommandError, use+" character", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "%s character %d", verb, id)
		},
	}
}

func newCharacterFavorite(opts *RootOptions, favorite bool) *cobra.Command {
	use, verb, short := "favorite", "favorited", "Mark a character as favorite"
	if !favorite {
		use, verb, short = "unfavorite", "unfavorited", "Clear a character's favorite mark"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetFavorite(cmd.Context(), id, favorite); err != nil {
				return WrapExitError(ExitCommandError, use+" character", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "%s character %d", verb, id)
		},
	}
}

func newCharacterSearch(opts *RootOptions) *cobra.Command {
	var archived bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search across names, aliases, roles, and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			characters, err := st.SearchCharacters(cmd.Context(), args[0], archived)
			if err != nil {
				return WrapExitError(ExitCommandError, "search characters", err)
			}

			f := opts.formatter(cmd)
			if f.Format == "json" {
				return f.Success(characters)
			}
			for _, c := range characters {
				printCharacterLine(f, c)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "include archived characters")
	return cmd
}

func newCharacterPower(opts *RootOptions) *cobra.Command {
	var (
		category string
		level    int
		desc     string
	)
	cmd := &cobra.Command{
		Use:   "power <id> <name>",
		Short: "Add a power to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p := codex.NewPower(args[1])
			p.Description = desc
			if category != "" {
				if !codex.ValidPowerCategory(codex.PowerCategory(category)) {
					return NewExitError(ExitCommandError,
						fmt.Sprintf("invalid category %q", category))
				}
				p.Category = codex.PowerCategory(category)
			}
			if level != 0 {
				if level < codex.MinPowerLevel || level > codex.MaxPowerLevel {
					return NewExitError(ExitCommandError,
						fmt.Sprintf("level must be %d-%d", codex.MinPowerLevel, codex.MaxPowerLevel))
				}
				p.Level = level
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			detail, err := st.GetCharacter(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get character", err)
			}
			if detail == nil {
				return NewExitError(ExitFailure, fmt.Sprintf("character %d not found", id))
			}

			powers := append(detail.Powers, p)
			patch := store.CharacterPatch{Powers: &powers}
			if err := st.UpdateCharacter(cmd.Context(), id, patch); err != nil {
				return WrapExitError(ExitCommandError, "update character", err)
			}
			return opts.formatter(cmd).Successf(p, "added power %q to character %d", p.Name, id)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "power category (offensive|defensive|utility|passive|transformation)")
	cmd.Flags().IntVar(&level, "level", 0, "power level 1-10")
	cmd.Flags().StringVar(&desc, "description", "", "power description")
	return cmd
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q", arg))
	}
	return id, nil
}

// printCharacterLine writes one character as a text row.
func printCharacterLine(f *OutputFormatter, c codex.Character) {
	marks := ""
	if c.IsFavorite {
		marks += " *"
	}
	if c.IsArchived {
		marks += " [archived]"
	}
	role := c.Role
	if role != "" {
		role = "  " + role
	}
	fmt.Fprintf(f.Writer, "%d\t%s%s%s\n", c.ID, c.Name, role, marks)
}

// printCharacterDetail writes the resolved view of one character.
func printCharacterDetail(f *OutputFormatter, d *codex.CharacterDetail) {
	printCharacterLine(f, d.Character)
	for _, p := range d.Projects {
		fmt.Fprintf(f.Writer, "  project: %s (%d)\n", p.Name, p.ID)
	}
	for _, t := range d.Tags {
		fmt.Fprintf(f.Writer, "  tag: %s (%d)\n", t.Name, t.ID)
	}
	for _, r := range d.Relationships {
		fmt.Fprintf(f.Writer, "  %s: %s (%d)\n", r.Type, r.Other.Name, r.Other.ID)
	}
	for _, p := range d.Powers {
		fmt.Fprintf(f.Writer, "  power: %s [%s %d]\n", p.Name, p.Category, p.Level)
	}
	if len(d.Traits) > 0 {
		fmt.Fprintf(f.Writer, "  traits: %s\n", strings.Join(d.Traits, ", "))
	}
}
