package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/config"
	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/tui"
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:     "chat",
	Aliases: []string{"c", "tui"},
	Short:   "Talk to the muse in an interactive session",
	Long: `Open an interactive chat with The Infinite Muse.

Ask for prompts in plain words ("give me a fantasy prompt"), then ask for a
twist, an explanation or to save it. The favorites count in the status bar
follows the favorites file, so saves from another terminal show up here.

Keys:
  enter   send         ctrl+g  generate in the selected genre
  tab     next genre   ctrl+t  twist
  ctrl+e  explain      ctrl+s  save
  esc     quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	conv, err := loadConversation()
	if err != nil {
		return err
	}

	watcher, err := tui.WatchFile(ctx.Favorites.Path())
	if err != nil {
		ctx.Logger().Warn("favorites watch unavailable", logging.KeyPath, ctx.Favorites.Path(), logging.KeyError, err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	if cfgManager != nil {
		cfgManager.OnChange(func(cfg *config.Config) {
			initLogging(cfg)
		})
		cfgManager.WatchConfig()
	}

	last := conv.Current
	save := func(next *model.Conversation) error {
		if err := persistConversation(last, next); err != nil {
			return err
		}
		last = next.Current
		return nil
	}

	final, err := tui.Run(tui.ChatConfig{
		Engine:       ctx.Engine(),
		Conversation: conv,
		Save:         save,
		CountFavorites: func() int {
			return len(ctx.Favorites.LoadAll())
		},
		Watcher: watcher,
	})
	if err != nil {
		return errors.NewSystemErrorWithOp("chat", "chat session failed", err)
	}

	ctx.Logger().Debug("chat closed", logging.KeyCount, final.PromptCount())
	return nil
}
