package chat

import (
	"fmt"
	"time"

	"github.com/manav03panchal/muse/internal/generator"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
)

// Name is how the muse introduces itself.
const Name = "The Infinite Muse"

// Fixed replies.
const (
	GreetReply      = "Hello! I'm " + Name + ", your creative writing assistant. Ready to tell a story?"
	HelpReply       = "**Commands:** prompt, twist, explain, save, clear, help."
	ClearReply      = "🔄 Conversation cleared."
	FarewellReply   = "👋 **Farewell:** May your stories flow like rivers. Return anytime."
	SavedReply      = "✅ Prompt saved to favorites!"
	DuplicateReply  = "⚠️ Already in your favorites."
	SaveFailedReply = "⚠️ Could not save."
	NothingToSave   = "No prompt to save. Generate one first!"
	TwistLabel      = "💫 **Plot Twist:**"
	ExplainLabel    = "🔍 **Explanation:**"
)

// personalities prefix prompt and twist replies.
var personalities = []string{
	"💭 *The muse whispers:* ",
	"📜 *From the ancient scrolls:* ",
	"✨ *A spark of inspiration:* ",
	"🌌 *In the realm of stories:* ",
}

// moodReplies take the user's message.
var moodReplies = map[Mood][]string{
	MoodHappy: {
		"Your joy is infectious! '%s' could be the start of something wonderful.",
		"I can feel the creative energy in '%s'. Let's channel it!",
	},
	MoodSad: {
		"I hear the weight in '%s'. Sometimes the best stories come from difficult places.",
		"'%s' carries depth. Even in shadows, stories wait to be told.",
	},
	MoodCreative: {
		"'%s' is fertile ground for imagination! What grows from this seed?",
		"That idea has roots. '%s' could blossom into something extraordinary.",
	},
	MoodContemplative: {
		"'%s'... an interesting thought. It reminds me of stories half-remembered.",
		"There are echoes in '%s', echoes of possibilities not yet explored.",
	},
}

// Favorites is the part of the favorites store the engine needs.
type Favorites interface {
	LoadAll() []*model.Prompt
	Add(p *model.Prompt) bool
}

// Reply is the engine's answer to one message.
type Reply struct {
	Intent Intent
	Text   string
	// Prompt is set when the reply generated a new prompt.
	Prompt *model.Prompt
	// Saved is set when the current prompt was added to favorites.
	Saved bool
	// Quit is set when the user asked to leave.
	Quit bool
}

// Engine answers chat messages. It holds no conversation state: every call
// to Handle receives the conversation and returns the updated copy.
type Engine struct {
	gen  *generator.Generator
	favs Favorites
	now  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine drawing prompts from gen and saving to favs.
// favs may be nil, in which case saving always fails.
func NewEngine(gen *generator.Generator, favs Favorites, opts ...Option) *Engine {
	e := &Engine{
		gen:  gen,
		favs: favs,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle answers input. conv is not modified; the returned conversation has
// the user message and the reply appended.
func (e *Engine) Handle(conv *model.Conversation, input string) (*model.Conversation, Reply) {
	next := conv.Clone()
	now := e.now()
	next.Messages = append(next.Messages, model.Message{
		Role:    model.RoleUser,
		Content: input,
		At:      now,
	})

	intent := Classify(input)
	reply := Reply{Intent: intent}
	msg := model.Message{Role: model.RoleAssistant, At: now}

	switch intent {
	case IntentQuit:
		reply.Text = FarewellReply
		reply.Quit = true

	case IntentGreet:
		reply.Text = GreetReply

	case IntentGenerate:
		p := e.gen.Generate(string(ExtractGenre(input)))
		next.Current = p
		reply.Prompt = p
		reply.Text = e.personality() + p.Text
		msg.Kind = model.MessagePrompt
		msg.PromptID = p.ID

	case IntentTwist:
		reply.Text = e.personality() + TwistLabel + " " + e.gen.AddTwist()

	case IntentExplain:
		reply.Text = ExplainLabel + " " + e.gen.Explain(next.Current)

	case IntentSave:
		reply.Text, reply.Saved = e.save(next.Current)

	case IntentClear:
		next.Messages = next.Messages[:0]
		reply.Text = ClearReply

	case IntentHelp:
		reply.Text = HelpReply

	default:
		reply.Text = e.converse(input)
	}

	msg.Content = reply.Text
	next.Messages = append(next.Messages, msg)

	logging.DebugLog("chat turn",
		logging.KeyIntent, string(intent),
		logging.KeyCount, len(next.Messages),
	)
	return next, reply
}

func (e *Engine) save(current *model.Prompt) (string, bool) {
	if current == nil {
		return NothingToSave, false
	}
	if e.favs == nil {
		return SaveFailedReply, false
	}
	for _, fav := range e.favs.LoadAll() {
		if fav.Text == current.Text {
			return DuplicateReply, false
		}
	}
	if !e.favs.Add(current.Clone()) {
		return SaveFailedReply, false
	}
	return SavedReply, true
}

func (e *Engine) converse(input string) string {
	replies := moodReplies[DetectMood(input)]
	return fmt.Sprintf(replies[e.gen.Intn(len(replies))], input)
}

func (e *Engine) personality() string {
	return personalities[e.gen.Intn(len(personalities))]
}
