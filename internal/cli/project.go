package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorekeep/lorekeep/internal/codex"
	"github.com/lorekeep/lorekeep/internal/store"
)

// NewProjectCommand creates the project command tree.
func NewProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAdd(opts))
	cmd.AddCommand(newProjectList(opts))
	cmd.AddCommand(newProjectUpdate(opts))
	cmd.AddCommand(newProjectDelete(opts))
	cmd.AddCommand(newProjectAssign(opts, true))
	cmd.AddCommand(newProjectAssign(opts, false))
	return cmd
}

func newProjectAdd(opts *RootOptions) *cobra.Command {
	var description, color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if color != "" && !codex.ValidPaletteColor(color) {
				return NewExitError(ExitCommandError, fmt.Sprintf("color %q is not in the palette", color))
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.CreateProject(cmd.Context(), codex.Project{
				Name:        args[0],
				Description: description,
				Color:       color,
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "create project", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "created project %d", id)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "palette color")
	return cmd
}

func newProjectList(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			projects, err := st.ListProjects(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list projects", err)
			}

			f := opts.formatter(cmd)
			if f.Format == "json" {
				return f.Success(projects)
			}
			for _, p := range projects {
				fmt.Fprintf(f.Writer, "%d\t%s\t%s\n", p.ID, p.Name, p.Color)
			}
			return nil
		},
	}
}

func newProjectUpdate(opts *RootOptions) *cobra.Command {
	var name, description, color string
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

			var patch store.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if err := st.UpdateProject(cmd.Context(), id, patch); err != nil {
				return WrapExitError(ExitCommandError, "update project", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "updated project %d", id)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "palette color")
	return cmd
}

func newProjectDelete(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project (characters are kept; only associations go)",
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

			if err := st.DeleteProject(cmd.Context(), id); err != nil {
				return WrapExitError(ExitCommandError, "delete project", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "deleted project %d", id)
		},
	}
}

func newProjectAssign(opts *RootOptions, assign bool) *cobra.Command {
	use, verb, short := "assign", "assigned", "Assign a character to a project"
	if !assign {
		use, verb, short = "unassign", "unassigned", "Remove a character from a project"
	}
	return &cobra.Command{
		Use:   use + " <project-id> <character-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
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
				err = st.AssignProject(cmd.Context(), characterID, projectID)
			} else {
				err = st.RemoveProject(cmd.Context(), characterID, projectID)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, use+" project", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"project_id": projectID, "character_id": characterID},
				"%s character %d", verb, characterID)
		},
	}
}
