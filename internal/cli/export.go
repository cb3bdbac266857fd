package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dq/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the store into a SQLite database",
		Long: `Snapshot every question into a SQLite database for ad-hoc queries.

The database gets a single questions(user, week, position, text) table.
Running export again replaces the previous snapshot's rows.

Example:
  dq export --out questions.db
  sqlite3 questions.db "SELECT week, COUNT(*) FROM questions GROUP BY week"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	guard, _, err := openStore(opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}

	qs, err := guard.All(cmd.Context())
	if err != nil {
		return outputStoreError(formatter, "read store", err)
	}
	formatter.VerboseLog("Read %d question(s) from store", len(qs))

	n, err := export.Export(cmd.Context(), opts.Output, qs)
	if err != nil {
		_ = formatter.Error(ErrCodeExportFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "export failed", err)
	}

	result := map[string]any{"path": opts.Output, "questions": n}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Exported %d question(s) to %s\n", n, opts.Output)
	})
}
