package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/model"
)

// completionHistoryLimit caps how many history entries are offered.
const completionHistoryLimit = 20

// completeGenres completes the genre argument of prompt.
func completeGenres(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, g := range model.Genres {
		if strings.HasPrefix(string(g), strings.ToLower(toComplete)) {
			completions = append(completions, string(g)+"\t"+g.Label())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeFavoriteIDs completes ids of saved favorites.
func completeFavoriteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Favorites == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return promptCompletions(ctx.Favorites.LoadAll(), toComplete, nil), cobra.ShellCompDirectiveNoFileComp
}

// completePromptIDs completes ids from favorites and recent history.
func completePromptIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Favorites == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := make(map[string]bool)
	completions := promptCompletions(ctx.Favorites.LoadAll(), toComplete, seen)
	if ctx.History != nil {
		recent, err := ctx.History.List(completionHistoryLimit)
		if err == nil {
			completions = append(completions, promptCompletions(recent, toComplete, seen)...)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// promptCompletions returns "id\tshort text" for prompts whose id starts
// with prefix, skipping ids already in seen.
func promptCompletions(prompts []*model.Prompt, prefix string, seen map[string]bool) []string {
	var completions []string
	for _, p := range prompts {
		if !strings.HasPrefix(p.ID, prefix) || seen[p.ID] {
			continue
		}
		if seen != nil {
			seen[p.ID] = true
		}
		completions = append(completions, p.ID+"\t"+p.Short(40))
	}
	return completions
}
