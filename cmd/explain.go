package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/chat"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/validate"
)

// explainCmd represents the explain command.
var explainCmd = &cobra.Command{
	Use:   "explain [ID]",
	Short: "Explain the ideas behind a prompt",
	Long: `Explain the current prompt, or the prompt with the given id from your
favorites or history.

Examples:
  muse explain
  muse explain 0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePromptIDs,
	RunE:              runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	p, err := promptFromArgs(args)
	if err != nil {
		return err
	}

	explanation := ctx.Generator.Explain(p)

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintText("explanation", explanation, p.ID)
	case ctx.IsPlain():
		ctx.Formatter.Println(explanation)
		return nil
	}

	ctx.CLIFormatter().PrintLabeled(chat.ExplainLabel, explanation)
	return nil
}

// promptFromArgs returns the prompt named by args[0], or the current prompt.
func promptFromArgs(args []string) (*model.Prompt, error) {
	if len(args) > 0 {
		if err := validate.PromptID(args[0]); err != nil {
			return nil, err
		}
		return ctx.Resolve(args[0])
	}
	return ctx.RequireCurrent()
}
