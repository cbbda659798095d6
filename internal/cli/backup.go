package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorekeep/lorekeep/internal/backup"
	"github.com/lorekeep/lorekeep/internal/codex"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var (
		single  int64
		archive bool
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the full dataset (or one character) to a file",
		Long: "Export writes the complete contents of every table - archived\n" +
			"characters included - as a JSON document, or as a zip archive with\n" +
			"image payloads when --archive is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			ctx := cmd.Context()

			if single != 0 {
				c, err := backup.ExportCharacter(ctx, st, single)
				if err != nil {
					return WrapExitError(ExitCommandError, "export character", err)
				}
				if c == nil {
					return NewExitError(ExitFailure, fmt.Sprintf("character %d not found", single))
				}
				data, err := backup.Encode(&backup.Document{Characters: []codex.Character{*c}})
				if err != nil {
					return WrapExitError(ExitCommandError, "encode export", err)
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "write export", err)
				}
				return f.Successf(map[string]string{"file": args[0]}, "exported character %d to %s", single, args[0])
			}

			if archive {
				lib, err := opts.library()
				if err != nil {
					return err
				}
				out, err := os.Create(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "create archive", err)
				}
				defer out.Close()

				report, err := backup.WriteArchive(ctx, st, lib, out)
				if err != nil {
					return WrapExitError(ExitCommandError, "write archive", err)
				}
				for _, ref := range report.MissingImages {
					f.VerboseLog("skipped missing image %s", ref)
				}
				return f.Successf(map[string]any{
					"file":           args[0],
					"missing_images": report.MissingImages,
				}, "exported archive to %s", args[0])
			}

			doc, err := backup.ExportAll(ctx, st)
			if err != nil {
				return WrapExitError(ExitCommandError, "export", err)
			}
			data, err := backup.Encode(doc)
			if err != nil {
				return WrapExitError(ExitCommandError, "encode export", err)
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return WrapExitError(ExitCommandError, "write export", err)
			}
			return f.Successf(map[string]any{
				"file":       args[0],
				"characters": len(doc.Characters),
				"projects":   len(doc.Projects),
				"tags":       len(doc.Tags),
			}, "exported %d characters, %d projects, %d tags to %s",
				len(doc.Characters), len(doc.Projects), len(doc.Tags), args[0])
		},
	}
	cmd.Flags().Int64Var(&single, "character", 0, "export a single character (id and timestamps stripped)")
	cmd.Flags().BoolVar(&archive, "archive", false, "write a zip archive including image files")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var (
		archive bool
		full    bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import entities from a backup file",
		Long: "Import creates projects, tags, and characters from a backup document,\n" +
			"skipping records whose names already exist (case-insensitive). Plain\n" +
			"import recreates bare entities only; --full restores associations and\n" +
			"relationships too, and requires an empty database.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			ctx := cmd.Context()

			var result *backup.Result
			if archive {
				lib, err := opts.library()
				if err != nil {
					return err
				}
				in, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "open archive", err)
				}
				defer in.Close()
				info, err := in.Stat()
				if err != nil {
					return WrapExitError(ExitCommandError, "stat archive", err)
				}
				result, err = backup.ReadArchive(ctx, st, lib, in, info.Size(), full)
				if err != nil {
					return WrapExitError(ExitFailure, "import archive", err)
				}
			} else {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "read backup file", err)
				}
				doc, err := backup.Decode(data)
				if err != nil {
					return WrapExitError(ExitFailure, "invalid backup document", err)
				}
				if full {
					result, err = backup.Restore(ctx, st, doc)
				} else {
					result, err = backup.Import(ctx, st, doc)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "import", err)
				}
			}

			if f.Format == "json" {
				return f.Success(result)
			}
			printCounts(f, "projects", result.Projects)
			printCounts(f, "tags", result.Tags)
			printCounts(f, "characters", result.Characters)
			return nil
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", false, "read a zip archive including image files")
	cmd.Flags().BoolVar(&full, "full", false, "full restore: replay associations and relationships (empty database only)")
	return cmd
}

// NewCheckCommand creates the check command.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a backup document without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "read backup file", err)
			}

			f := opts.formatter(cmd)
			if err := backup.Validate(data); err != nil {
				f.Error(ErrCodeBadDocument, err.Error(), nil)
				return NewExitError(ExitFailure, "invalid backup document")
			}
			return f.Successf(map[string]string{"file": args[0]}, "%s is a valid backup document", args[0])
		},
	}
}

// printCounts writes one kind's import report as a text line.
func printCounts(f *OutputFormatter, kind string, c backup.Counts) {
	parts := []string{fmt.Sprintf("%d imported", c.Imported)}
	if c.Duplicates > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicates", c.Duplicates))
	}
	if c.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", c.Errors))
	}
	fmt.Fprintf(f.Writer, "%s: %s\n", kind, strings.Join(parts, ", "))
}
