package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/validate"
)

// History command flags.
var (
	historyFlagLimit int
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Show recently generated prompts",
	Long: `Show prompts generated in this data directory, newest first.

Examples:
  muse history
  muse history --limit 25
  muse history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the prompt history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "n", 10, "Maximum prompts to show (0 for all)")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validate.Limit("limit", historyFlagLimit); err != nil {
		return err
	}

	prompts, err := ctx.History.List(historyFlagLimit)
	if err != nil {
		return errors.NewSystemErrorWithOp("history", "failed to read the history", err)
	}

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintPrompts(prompts)
	case ctx.IsPlain():
		ctx.PlainFormatter().PrintPromptList(prompts)
		return nil
	}

	ctx.CLIFormatter().PrintPromptList("📜 History", prompts, "No prompts yet. Try 'muse prompt'.")
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	n, err := ctx.History.Clear()
	if err != nil {
		return errors.NewSystemErrorWithOp("history clear", "failed to clear the history", err)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintText("history_cleared", plural(n, "prompt"), "")
	}
	ctx.CLIFormatter().Success("Cleared " + plural(n, "prompt") + " from history")
	return nil
}
