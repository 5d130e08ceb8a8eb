package chat

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/muse/internal/favorites"
	"github.com/manav03panchal/muse/internal/generator"
	"github.com/manav03panchal/muse/internal/model"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*Engine, *favorites.Store) {
	t.Helper()
	gen, err := generator.New(generator.DefaultPools(),
		generator.WithSeed(7),
		generator.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)

	store := favorites.New(filepath.Join(t.TempDir(), favorites.FileName),
		favorites.WithMinFreeSpace(0),
		favorites.WithClock(func() time.Time { return fixedNow }),
	)
	return NewEngine(gen, store, WithClock(func() time.Time { return fixedNow })), store
}

func hasPersonality(s string) bool {
	for _, p := range personalities {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// =============================================================================
// Classification
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected Intent
	}{
		{"hello there", IntentGreet},
		{"Hi!", IntentGreet},
		{"give me a prompt", IntentGenerate},
		{"any story ideas?", IntentGenerate},
		{"generate a mystery", IntentGenerate},
		{"add a plot twist", IntentTwist},
		{"explain this", IntentExplain},
		{"what's the symbolism", IntentExplain},
		{"save it", IntentSave},
		{"make it a favorite", IntentSave},
		{"clear chat", IntentClear},
		{"reset", IntentClear},
		{"help", IntentHelp},
		{"what commands are there", IntentHelp},
		{"bye", IntentQuit},
		{"exit", IntentQuit},
		{"this is nice", IntentConversation},
		{"", IntentConversation},
		{"shipwreck", IntentConversation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}

func TestClassifyWholeWords(t *testing.T) {
	// "this" contains "hi", "savers" contains "save"
	assert.Equal(t, IntentConversation, Classify("this"))
	assert.Equal(t, IntentConversation, Classify("lifesavers"))
	assert.Equal(t, IntentConversation, Classify("history"))
}

func TestExtractGenre(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Genre
	}{
		{"mystery prompt", model.GenreMystery},
		{"a FANTASY story", model.GenreFantasy},
		{"scifi idea", model.GenreSciFi},
		{"sci-fi idea", model.GenreSciFi},
		{"sci fi idea", model.GenreSciFi},
		{"horror please", model.GenreHorror},
		{"noir", model.GenreNoir},
		{"noir or mystery", model.GenreMystery},
		{"a prompt", model.GenreAny},
		{"mysterious prompt", model.GenreAny},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractGenre(tt.input))
		})
	}
}

func TestDetectMood(t *testing.T) {
	assert.Equal(t, MoodHappy, DetectMood("I feel great today"))
	assert.Equal(t, MoodSad, DetectMood("so tired"))
	assert.Equal(t, MoodCreative, DetectMood("I want to write"))
	assert.Equal(t, MoodContemplative, DetectMood("the sea at night"))
	assert.Equal(t, MoodHappy, DetectMood("good but tired"))
}

// =============================================================================
// Engine
// =============================================================================

func TestHandleDoesNotMutateInput(t *testing.T) {
	engine, _ := setupEngine(t)
	conv := model.NewConversation()

	next, _ := engine.Handle(conv, "prompt")
	assert.Empty(t, conv.Messages)
	assert.Nil(t, conv.Current)
	assert.Len(t, next.Messages, 2)
	assert.NotNil(t, next.Current)
}

func TestHandleGenerate(t *testing.T) {
	engine, _ := setupEngine(t)

	conv, reply := engine.Handle(model.NewConversation(), "give me a noir prompt")
	assert.Equal(t, IntentGenerate, reply.Intent)
	require.NotNil(t, reply.Prompt)
	assert.Equal(t, model.GenreNoir, reply.Prompt.Genre)
	assert.Contains(t, reply.Prompt.Text, "NOIR")
	assert.True(t, hasPersonality(reply.Text))
	assert.True(t, strings.HasSuffix(reply.Text, reply.Prompt.Text))
	assert.False(t, hasPersonality(reply.Prompt.Text))

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "give me a noir prompt", conv.Messages[0].Content)
	assert.Equal(t, model.MessagePrompt, conv.Messages[1].Kind)
	assert.Equal(t, reply.Prompt.ID, conv.Messages[1].PromptID)
	assert.Equal(t, reply.Prompt, conv.Current)
	assert.Equal(t, 1, conv.PromptCount())
	assert.True(t, fixedNow.Equal(conv.Messages[1].At))
}

func TestHandleGenerateMixed(t *testing.T) {
	engine, _ := setupEngine(t)
	_, reply := engine.Handle(model.NewConversation(), "story")
	require.NotNil(t, reply.Prompt)
	assert.Equal(t, model.GenreMixed, reply.Prompt.Genre)
	assert.True(t, strings.HasPrefix(reply.Prompt.Text, "📖 "))
}

func TestHandleTwistAndExplain(t *testing.T) {
	engine, _ := setupEngine(t)
	conv := model.NewConversation()

	_, reply := engine.Handle(conv, "explain")
	assert.Equal(t, ExplainLabel+" "+generator.NoPromptMessage, reply.Text)

	conv, _ = engine.Handle(conv, "prompt")
	conv, reply = engine.Handle(conv, "twist")
	assert.Equal(t, IntentTwist, reply.Intent)
	assert.True(t, hasPersonality(reply.Text))
	assert.Contains(t, reply.Text, TwistLabel)
	assert.Nil(t, reply.Prompt)

	_, reply = engine.Handle(conv, "what does it mean? explain")
	assert.True(t, strings.HasPrefix(reply.Text, ExplainLabel))
	assert.NotContains(t, reply.Text, generator.NoPromptMessage)
}

func TestHandleSave(t *testing.T) {
	engine, store := setupEngine(t)

	conv, reply := engine.Handle(model.NewConversation(), "save")
	assert.Equal(t, NothingToSave, reply.Text)
	assert.False(t, reply.Saved)

	conv, gen := engine.Handle(conv, "mystery prompt")
	conv, reply = engine.Handle(conv, "save")
	assert.Equal(t, SavedReply, reply.Text)
	assert.True(t, reply.Saved)

	favs := store.LoadAll()
	require.Len(t, favs, 1)
	assert.Equal(t, gen.Prompt.Text, favs[0].Text)
	assert.Equal(t, gen.Prompt.ID, favs[0].ID)
	assert.False(t, conv.Current.IsSaved())

	_, reply = engine.Handle(conv, "save it again")
	assert.Equal(t, DuplicateReply, reply.Text)
	assert.Len(t, store.LoadAll(), 1)
}

func TestHandleSaveWithoutStore(t *testing.T) {
	gen, err := generator.New(generator.DefaultPools(), generator.WithSeed(1))
	require.NoError(t, err)
	engine := NewEngine(gen, nil)

	conv, _ := engine.Handle(model.NewConversation(), "prompt")
	_, reply := engine.Handle(conv, "save")
	assert.Equal(t, SaveFailedReply, reply.Text)
}

func TestHandleClear(t *testing.T) {
	engine, _ := setupEngine(t)
	conv, _ := engine.Handle(model.NewConversation(), "prompt")
	conv, _ = engine.Handle(conv, "hello")
	require.Len(t, conv.Messages, 4)

	conv, reply := engine.Handle(conv, "clear")
	assert.Equal(t, ClearReply, reply.Text)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, model.RoleAssistant, conv.Messages[0].Role)
	assert.NotNil(t, conv.Current)
}

func TestHandleFixedReplies(t *testing.T) {
	engine, _ := setupEngine(t)
	conv := model.NewConversation()

	_, reply := engine.Handle(conv, "hey")
	assert.Equal(t, GreetReply, reply.Text)

	_, reply = engine.Handle(conv, "help")
	assert.Equal(t, HelpReply, reply.Text)

	_, reply = engine.Handle(conv, "bye")
	assert.Equal(t, FarewellReply, reply.Text)
	assert.True(t, reply.Quit)
}

func TestHandleConversation(t *testing.T) {
	engine, _ := setupEngine(t)

	_, reply := engine.Handle(model.NewConversation(), "I feel great")
	assert.Equal(t, IntentConversation, reply.Intent)
	assert.Contains(t, reply.Text, "'I feel great'")

	found := false
	for _, tmpl := range moodReplies[MoodHappy] {
		if strings.Contains(tmpl, strings.Split(reply.Text, "'")[0]) {
			found = true
		}
	}
	assert.True(t, found)
}
