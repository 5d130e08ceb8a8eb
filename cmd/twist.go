package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/chat"
)

// twistCmd represents the twist command.
var twistCmd = &cobra.Command{
	Use:   "twist",
	Short: "Suggest a plot twist",
	Long: `Suggest a plot twist for your story.

Examples:
  muse twist`,
	Args: cobra.NoArgs,
	RunE: runTwist,
}

func init() {
	rootCmd.AddCommand(twistCmd)
}

func runTwist(cmd *cobra.Command, args []string) error {
	twist := ctx.Generator.AddTwist()

	switch {
	case ctx.IsJSON():
		promptID := ""
		if p, err := ctx.Current(); err == nil && p != nil {
			promptID = p.ID
		}
		return ctx.JSONFormatter().PrintText("twist", twist, promptID)
	case ctx.IsPlain():
		ctx.Formatter.Println(twist)
		return nil
	}

	ctx.CLIFormatter().PrintLabeled(chat.TwistLabel, twist)
	return nil
}
