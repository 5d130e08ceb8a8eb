package parser

import (
	"strings"

	"github.com/manav03panchal/muse/internal/model"
)

// ParseGenreArgs joins command arguments into a genre. No arguments means
// any genre. Unlike model.ParseGenre, unknown names are an error so typos on
// the command line do not silently fall back to mixed prompts.
func ParseGenreArgs(args []string) (model.Genre, error) {
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		return model.GenreAny, nil
	}

	g := model.ParseGenre(input)
	if g == model.GenreAny && !isAnyAlias(input) {
		names := make([]string, 0, len(model.Genres))
		for _, genre := range model.Genres {
			names = append(names, string(genre))
		}
		return model.GenreAny, NewGenreError(input, names)
	}
	return g, nil
}

func isAnyAlias(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "mixed":
		return true
	}
	return false
}
