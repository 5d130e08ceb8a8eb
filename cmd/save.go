package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
)

// saveCmd represents the save command.
var saveCmd = &cobra.Command{
	Use:   "save [ID]",
	Short: "Save a prompt to your favorites",
	Long: `Save the current prompt, or a prompt from your history, to favorites.
A prompt whose text is already saved is not added twice.

Examples:
  muse save
  muse save 0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePromptIDs,
	RunE:              runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	p, err := promptFromArgs(args)
	if err != nil {
		return err
	}

	for _, fav := range ctx.Favorites.LoadAll() {
		if fav.Text == p.Text {
			if ctx.IsJSON() {
				return ctx.JSONFormatter().PrintPrompt("duplicate", fav)
			}
			ctx.CLIFormatter().Warning("Already in your favorites.")
			return nil
		}
	}

	saved := p.Clone()
	if !ctx.Favorites.Add(saved) {
		return errors.NewSystemErrorWithOp("save", "could not save the prompt to "+ctx.Favorites.Path(), nil)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintPrompt("saved", saved)
	}
	ctx.CLIFormatter().Success("Prompt saved to favorites!")
	return nil
}
