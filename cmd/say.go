package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/validate"
)

// sayCmd represents the say command.
var sayCmd = &cobra.Command{
	Use:   "say MESSAGE...",
	Short: "Send one message to the muse",
	Long: `Send a single chat message and print the reply. The conversation is
kept between calls, so 'muse say twist' works on the prompt from the previous
'muse say give me a noir prompt'.

Examples:
  muse say hello
  muse say give me a spooky horror prompt
  muse say add a twist
  muse say save it`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSay,
}

func init() {
	rootCmd.AddCommand(sayCmd)
}

func runSay(cmd *cobra.Command, args []string) error {
	input := validate.SanitizeMessage(strings.Join(args, " "))
	if err := validate.Message(input); err != nil {
		return err
	}

	conv, err := loadConversation()
	if err != nil {
		return err
	}

	next, reply := ctx.Engine().Handle(conv, input)
	if err := persistConversation(conv.Current, next); err != nil {
		return err
	}

	if ctx.IsJSON() {
		id := ""
		if reply.Prompt != nil {
			id = reply.Prompt.ID
		}
		return ctx.JSONFormatter().PrintText(string(reply.Intent), reply.Text, id)
	}
	if ctx.IsPlain() {
		ctx.Formatter.Println(reply.Text)
		return nil
	}

	cli := ctx.CLIFormatter()
	if reply.Prompt != nil {
		cli.PrintPrompt(reply.Prompt)
		return nil
	}
	ctx.Formatter.Println(reply.Text)
	return nil
}

// loadConversation returns the saved conversation with its current prompt
// synced to the session.
func loadConversation() (*model.Conversation, error) {
	conv, err := ctx.Conversations.Load()
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("load conversation", "failed to read the conversation", err)
	}
	current, err := ctx.Current()
	if err != nil {
		return nil, err
	}
	conv.Current = current
	return conv, nil
}

// persistConversation saves next and, when its current prompt differs from
// previous, records the new prompt and makes it current for other commands.
func persistConversation(previous *model.Prompt, next *model.Conversation) error {
	if err := ctx.Conversations.Save(next); err != nil {
		return errors.NewSystemErrorWithOp("save conversation", "failed to save the conversation", err)
	}

	p := next.Current
	if p == nil || (previous != nil && previous.ID == p.ID) {
		return nil
	}
	if err := ctx.History.Record(p); err != nil {
		ctx.Logger().Warn("failed to record history", logging.KeyPromptID, p.ID, logging.KeyError, err)
	}
	if err := ctx.Session.SetCurrent(p); err != nil {
		return errors.NewSystemErrorWithOp("set current", "failed to remember the prompt", err)
	}
	return nil
}
