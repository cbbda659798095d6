package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
)

// NewTagCommand creates the tag command tree.
func NewTagCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(newTagAdd(opts))
	cmd.AddCommand(newTagList(opts))
	cmd.AddCommand(newTagUpdate(opts))
	cmd.AddCommand(newTagDelete(opts))
	cmd.AddCommand(newTagAssign(opts, true))
	cmd.AddCommand(newTagAssign(opts, false))
	return cmd
}

func newTagAdd(opts *RootOptions) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag (names are unique)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.CreateTag(cmd.Context(), codex.Tag{Name: args[0], Color: color})
			if err != nil {
				return WrapExitError(ExitCommandError, "create tag", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "created tag %d", id)
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "palette color")
	return cmd
}

func newTagList(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			tags, err := st.ListTags(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list tags", err)
			}

			f := opts.formatter(cmd)
			if f.Format == "json" {
				return f.Success(tags)
			}
			for _, t := range tags {
				fmt.Fprintf(f.Writer, "%d\t%s\t%s\n", t.ID, t.Name, t.Color)
			}
			return nil
		},
	}
}

func newTagUpdate(opts *RootOptions) *cobra.Command {
	var name, color string
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

			var patch store.TagPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if err := st.UpdateTag(cmd.Context(), id, patch); err != nil {
				return WrapExitError(ExitCommandError, "update tag", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "updated tag %d", id)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "tag name")
	cmd.Flags().StringVar(&color, "color", "", "palette color")
	return cmd
}

func newTagDelete(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag (characters are kept; only associations go)",
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

			if err := st.DeleteTag(cmd.Context(), id); err != nil {
				return WrapExitError(ExitCommandError, "delete tag", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "deleted tag %d", id)
		},
	}
}

func newTagAssign(opts *RootOptions, assign bool) *cobra.Command {
	use, verb, short := "assign", "tagged", "Attach a tag to a character"
	if !assign {
		use, verb, short = "unassign", "untagged", "Detach a tag from a character"
	}
	return &cobra.Command{
		Use:   use + " <tag-id> <character-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagID, err := parseID(args[0])
			if err != nil {
				return err
			}
			characterID, err := parseID(args[1])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if assign {
				err = st.AssignTag(cmd.Context(), characterID, tagID)
			} else {
				err = st.RemoveTag(cmd.Context(), characterID, tagID)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, use+" tag", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"tag_id": tagID, "character_id": characterID},
				"%s character %d", verb, characterID)
		},
	}
}
