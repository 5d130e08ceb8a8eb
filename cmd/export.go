package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/favorites"
	"github.com/manav03panchal/muse/internal/validate"
)

// Export command flags.
var (
	exportFlagFormat string
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export your favorites",
	Long: `Export every saved prompt as JSON or as a readable text list.

Examples:
  muse export
  muse export --format text
  muse export -F json -o favorites-backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "F", favorites.FormatJSON, "Export format: json, text")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return favorites.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(strings.TrimSpace(exportFlagFormat))
	if !isExportFormat(format) {
		return &errors.UserError{
			Message: "unsupported export format",
			Field:   "format",
			Value:   exportFlagFormat,
			Cause:   errors.ErrInvalidFormat,
		}
	}

	data := ctx.Favorites.Export(format)
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}

	if !cmd.Flags().Changed("output") {
		ctx.Formatter.Print(data)
		return nil
	}
	if err := validate.OutputPath(exportFlagOutput); err != nil {
		return err
	}

	if err := favorites.SafeWrite(exportFlagOutput, []byte(data), 0o644, ctx.Config.MinFreeSpace); err != nil {
		return errors.NewSystemErrorWithOp("export", "failed to write "+exportFlagOutput, err)
	}

	count := len(ctx.Favorites.LoadAll())
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintText("export", exportFlagOutput, "")
	}
	ctx.CLIFormatter().Success(plural(count, "favorite") + " exported to " + exportFlagOutput)
	return nil
}

func isExportFormat(format string) bool {
	for _, f := range favorites.Formats {
		if f == format {
			return true
		}
	}
	return false
}
