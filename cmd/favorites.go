package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/parser"
	"github.com/manav03panchal/muse/internal/validate"
)

// Favorites command flags.
var (
	favoritesFlagSince string
	favoritesFlagGenre string
)

// favoritesCmd represents the favorites command.
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favs", "f"},
	Short:   "List and manage saved prompts",
	Long: `List, show and remove the prompts saved in your favorites file.

Examples:
  muse favorites
  muse favorites list --genre noir
  muse favorites list --since 'last week'
  muse favorites show 0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b
  muse favorites remove 0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b`,
	Args: cobra.NoArgs,
	RunE: runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved prompts",
	Args:    cobra.NoArgs,
	RunE:    runFavoritesList,
}

var favoritesShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a saved prompt",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFavoriteIDs,
	RunE:              runFavoritesShow,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:               "remove ID",
	Aliases:           []string{"rm", "delete"},
	Short:             "Remove a saved prompt",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFavoriteIDs,
	RunE:              runFavoritesRemove,
}

func init() {
	for _, c := range []*cobra.Command{favoritesCmd, favoritesListCmd} {
		c.Flags().StringVar(&favoritesFlagSince, "since", "", "Only prompts saved since (e.g. yesterday, 'last week')")
		c.Flags().StringVar(&favoritesFlagGenre, "genre", "", "Only prompts of this genre (mystery, fantasy, scifi, horror, noir, mixed)")
		c.RegisterFlagCompletionFunc("genre", completeGenres)
	}

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesShowCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// favoritesFilter selects favorites by save time and genre.
type favoritesFilter struct {
	Since time.Time
	Genre model.Genre
}

func parseFavoritesFilter(since, genre string, now time.Time) (favoritesFilter, error) {
	var f favoritesFilter

	if strings.TrimSpace(since) != "" {
		t, err := parser.ParseSince(since, now)
		if err != nil {
			if pe, ok := err.(*parser.ParseError); ok {
				ue := pe.ToUserError()
				ue.Cause = errors.ErrInvalidTimestamp
				return f, ue
			}
			return f, err
		}
		f.Since = t
	}

	if g := strings.ToLower(strings.TrimSpace(genre)); g != "" {
		if g == string(model.GenreMixed) {
			f.Genre = model.GenreMixed
		} else {
			parsed, err := parser.ParseGenreArgs([]string{g})
			if err != nil {
				return f, genreError(err)
			}
			f.Genre = parsed.Stored()
		}
	}
	return f, nil
}

func (f favoritesFilter) apply(favorites []*model.Prompt) []*model.Prompt {
	out := make([]*model.Prompt, 0, len(favorites))
	for _, p := range favorites {
		if f.Genre != "" && p.Genre != f.Genre {
			continue
		}
		if !f.Since.IsZero() {
			saved, ok := p.SavedAt.Time()
			if !ok || saved.Before(f.Since) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	filter, err := parseFavoritesFilter(favoritesFlagSince, favoritesFlagGenre, time.Now())
	if err != nil {
		return err
	}

	favorites := filter.apply(ctx.Favorites.LoadAll())

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintPrompts(favorites)
	case ctx.IsPlain():
		ctx.PlainFormatter().PrintPromptList(favorites)
		return nil
	}

	ctx.CLIFormatter().PrintPromptList("🌟 Favorites", favorites,
		"No favorites yet. Save one with 'muse save'.")
	return nil
}

func runFavoritesShow(cmd *cobra.Command, args []string) error {
	if err := validate.PromptID(args[0]); err != nil {
		return err
	}
	p, ok := ctx.Favorites.Find(args[0])
	if !ok {
		return errors.Wrapf(errors.ErrPromptNotFound, "no favorite with id %s", args[0])
	}

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintPrompt("saved", p)
	case ctx.IsPlain():
		ctx.PlainFormatter().PrintPrompt(p)
		return nil
	}

	ctx.CLIFormatter().PrintPrompt(p)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	if err := validate.PromptID(args[0]); err != nil {
		return err
	}
	if !ctx.Favorites.Remove(args[0]) {
		return errors.Wrapf(errors.ErrPromptNotFound, "no favorite with id %s", args[0])
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintText("removed", args[0], args[0])
	}
	ctx.CLIFormatter().Success("Removed " + args[0])
	return nil
}
