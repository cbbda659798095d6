package cli

import (
	"github.com/spf13/cobra"

	"github.com/lorekeep/lorekeep/internal/codex"
)

// NewRelateCommand creates the relate command.
func NewRelateCommand(opts *RootOptions) *cobra.Command {
	var relType, notes string
	cmd := &cobra.Command{
		Use:   "relate <character-a-id> <character-b-id>",
		Short: "Create a relationship between two characters",
		Long: "Create a relationship between two characters. Storage is directional\n" +
			"but both characters will list it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := parseID(args[0])
			if err != nil {
				return err
			}
			bID, err := parseID(args[1])
			if err != nil {
				return err
			}
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.CreateRelationship(cmd.Context(), codex.Relationship{
				CharacterAID: aID,
				CharacterBID: bID,
				Type:         relType,
				Notes:        notes,
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "create relationship", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "created relationship %d", id)
		},
	}
	cmd.Flags().StringVar(&relType, "type", "", "relationship type (e.g. ally, rival, family)")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	cmd.MarkFlagRequired("type")
	cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return codex.SuggestedRelationTypes, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// NewUnrelateCommand creates the unrelate command.
func NewUnrelateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unrelate <relationship-id>",
		Short: "Delete a relationship",
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

			if err := st.DeleteRelationship(cmd.Context(), id); err != nil {
				return WrapExitError(ExitCommandError, "delete relationship", err)
			}
			return opts.formatter(cmd).Successf(
				map[string]int64{"id": id}, "deleted relationship %d", id)
		},
	}
}
