package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/parser"
)

// promptCmd represents the prompt command.
var promptCmd = &cobra.Command{
	Use:     "prompt [GENRE]",
	Aliases: []string{"generate", "p"},
	Short:   "Generate a writing prompt",
	Long: `Generate a new writing prompt and make it the current prompt.

Genres: mystery, fantasy, scifi, horror, noir. Without a genre the prompt
mixes freely.

Examples:
  muse prompt
  muse prompt mystery
  muse p sci-fi`,
	ValidArgsFunction: completeGenres,
	RunE:              runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	genre, err := parser.ParseGenreArgs(args)
	if err != nil {
		return genreError(err)
	}

	p, err := ctx.Generate(genre)
	if err != nil {
		return err
	}

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintPrompt("generated", p)
	case ctx.IsPlain():
		ctx.PlainFormatter().PrintPrompt(p)
		return nil
	}

	ctx.CLIFormatter().PrintPrompt(p)
	return nil
}

// genreError turns a genre parse error into a user error.
func genreError(err error) error {
	if pe, ok := err.(*parser.ParseError); ok {
		ue := pe.ToUserError()
		ue.Cause = errors.ErrInvalidGenre
		return ue
	}
	return err
}
