package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/muse/internal/chat"
	"github.com/manav03panchal/muse/internal/favorites"
	"github.com/manav03panchal/muse/internal/generator"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/validate"
)

func setupChat(t *testing.T) (*ChatModel, *favorites.Store, *[]*model.Conversation) {
	t.Helper()
	gen, err := generator.New(generator.DefaultPools(), generator.WithSeed(11))
	require.NoError(t, err)
	store := favorites.New(filepath.Join(t.TempDir(), favorites.FileName), favorites.WithMinFreeSpace(0))

	var saved []*model.Conversation
	m := NewChatModel(ChatConfig{
		Engine: chat.NewEngine(gen, store),
		Save: func(c *model.Conversation) error {
			saved = append(saved, c)
			return nil
		},
		CountFavorites: func() int { return len(store.LoadAll()) },
	})
	return m, store, &saved
}

func typeText(m *ChatModel, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// =============================================================================
// ChatModel Tests
// =============================================================================

func TestNewChatModel(t *testing.T) {
	m, _, _ := setupChat(t)
	assert.NotNil(t, m.Conversation())
	assert.Empty(t, m.Conversation().Messages)
	assert.Equal(t, model.GenreAny, m.Genre())
	assert.Equal(t, 0, m.Favorites())
	assert.Nil(t, m.Init())
}

func TestChatTypingAndEnter(t *testing.T) {
	m, _, saved := setupChat(t)

	typeText(m, "helloo")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hello", string(m.input))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.input)

	msgs := m.Conversation().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, chat.GreetReply, msgs[1].Content)
	assert.Len(t, *saved, 1)
}

func TestChatEnterIgnoresBlankInput(t *testing.T) {
	m, _, saved := setupChat(t)
	typeText(m, "   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Conversation().Messages)
	assert.Empty(t, *saved)
}

func TestChatRejectsOverlongInput(t *testing.T) {
	m, _, saved := setupChat(t)
	m.input = []rune(strings.Repeat("a", validate.MaxMessageLength+1))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Conversation().Messages)
	assert.Empty(t, *saved)
	assert.Error(t, m.err)
	assert.Empty(t, m.input)
}

func TestChatGenreCycleAndGenerate(t *testing.T) {
	m, _, _ := setupChat(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.GenreMystery, m.Genre())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	conv := m.Conversation()
	require.NotNil(t, conv.Current)
	assert.Equal(t, model.GenreMystery, conv.Current.Genre)
	assert.Equal(t, "mystery prompt", conv.Messages[0].Content)

	for i := 0; i < len(model.Genres)-1; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, model.GenreAny, m.Genre())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, model.GenreMixed, m.Conversation().Current.Genre)
	assert.Equal(t, 2, m.Conversation().PromptCount())
}

func TestChatShortcuts(t *testing.T) {
	m, store, _ := setupChat(t)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	msgs := m.Conversation().Messages
	require.Len(t, msgs, 8)
	assert.Contains(t, msgs[3].Content, chat.TwistLabel)
	assert.Contains(t, msgs[5].Content, chat.ExplainLabel)
	assert.Equal(t, chat.SavedReply, msgs[7].Content)

	assert.Len(t, store.LoadAll(), 1)
	assert.Equal(t, 1, m.Favorites())
}

func TestChatQuit(t *testing.T) {
	t.Run("esc", func(t *testing.T) {
		m, _, _ := setupChat(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, isQuit(cmd))
		assert.Equal(t, "", m.View())
	})

	t.Run("bye", func(t *testing.T) {
		m, _, saved := setupChat(t)
		typeText(m, "bye")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, isQuit(cmd))
		assert.Len(t, *saved, 1)
		assert.Equal(t, chat.FarewellReply, m.Conversation().Messages[1].Content)
	})
}

func TestChatFavoritesChanged(t *testing.T) {
	m, store, _ := setupChat(t)

	p := &model.Prompt{Text: "📖 Outside write.", Genre: model.GenreMixed}
	require.True(t, store.Add(p))
	assert.Equal(t, 0, m.Favorites())

	m.Update(favoritesChangedMsg{})
	assert.Equal(t, 1, m.Favorites())
}

func TestChatView(t *testing.T) {
	m, _, _ := setupChat(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, chat.Name)
	assert.Contains(t, view, "Ask for a prompt")
	assert.Contains(t, view, "Favorites: 0")
	assert.Contains(t, view, "Genre: Mixed")

	typeText(m, "noir prompt")
	view = m.View()
	assert.Contains(t, view, "> noir prompt")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	assert.Contains(t, view, "You:")
	assert.Contains(t, view, "Muse:")
	assert.Contains(t, view, "NOIR")
	assert.Contains(t, view, "Prompts: 1")
}

func TestChatViewTruncatesToHeight(t *testing.T) {
	m, _, _ := setupChat(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	for i := 0; i < 10; i++ {
		typeText(m, "hello")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	transcript := m.renderTranscript(80)
	assert.LessOrEqual(t, len(splitLines(transcript)), 4)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// =============================================================================
// Components
// =============================================================================

func TestStatusBar(t *testing.T) {
	view := StatusBar{Favorites: 3, Genre: model.GenreSciFi, Prompts: 2}.View()
	assert.Contains(t, view, "Favorites: 3")
	assert.Contains(t, view, "Genre: Sci-Fi")
	assert.Contains(t, view, "Prompts: 2")
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	for _, k := range []string{"enter", "^g", "^t", "^e", "^s", "tab", "esc"} {
		assert.Contains(t, help, k)
	}
}

// =============================================================================
// FileWatcher
// =============================================================================

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, favorites.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	fw, err := WatchFile(path)
	require.NoError(t, err)

	// Unrelated files do not trigger.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"favorites":[]}`), 0o644))

	select {
	case <-fw.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, fw.Close())
	// Channel is closed once the loop exits.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-fw.Changes():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("changes channel not closed")
		}
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	_, err := WatchFile(filepath.Join(t.TempDir(), "nope", "favorites.json"))
	assert.Error(t, err)
}

func TestWaitForFavorites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, favorites.FileName)
	fw, err := WatchFile(path)
	require.NoError(t, err)
	defer fw.Close()

	m := NewChatModel(ChatConfig{Watcher: fw})
	cmd := m.Init()
	require.NotNil(t, cmd)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		assert.IsType(t, favoritesChangedMsg{}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no favorites message")
	}
}
