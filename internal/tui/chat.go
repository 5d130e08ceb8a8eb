package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/muse/internal/chat"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
	"github.com/manav03panchal/muse/internal/validate"
)

// favoritesChangedMsg is sent when the favorites file changes on disk.
type favoritesChangedMsg struct{}

// ChatConfig holds what the chat model needs.
type ChatConfig struct {
	Engine       *chat.Engine
	Conversation *model.Conversation
	// Save persists the conversation after every turn. Optional.
	Save func(*model.Conversation) error
	// CountFavorites returns the number of saved favorites. Optional.
	CountFavorites func() int
	// Watcher signals favorites file changes. Optional.
	Watcher *FileWatcher
}

// ChatModel is the bubbletea model for the chat interface.
type ChatModel struct {
	engine  *chat.Engine
	conv    *model.Conversation
	save    func(*model.Conversation) error
	count   func() int
	watcher *FileWatcher

	// UI state
	input     []rune
	genreIdx  int
	favorites int
	width     int
	height    int
	err       error
	quitting  bool
}

// NewChatModel creates a new chat model.
func NewChatModel(cfg ChatConfig) *ChatModel {
	conv := cfg.Conversation
	if conv == nil {
		conv = model.NewConversation()
	}
	m := &ChatModel{
		engine:  cfg.Engine,
		conv:    conv,
		save:    cfg.Save,
		count:   cfg.CountFavorites,
		watcher: cfg.Watcher,
	}
	m.refreshFavorites()
	return m
}

// Conversation returns the current conversation.
func (m *ChatModel) Conversation() *model.Conversation {
	return m.conv
}

// Genre returns the genre used by the generate shortcut.
func (m *ChatModel) Genre() model.Genre {
	return model.Genres[m.genreIdx]
}

// Favorites returns the last known favorites count.
func (m *ChatModel) Favorites() int {
	return m.favorites
}

// Init initializes the model.
func (m *ChatModel) Init() tea.Cmd {
	return m.waitForFavorites()
}

// Update handles messages and updates the model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case favoritesChangedMsg:
		m.refreshFavorites()
		return m, m.waitForFavorites()
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *ChatModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		text := validate.SanitizeMessage(string(m.input))
		m.input = m.input[:0]
		if text == "" {
			return m, nil
		}
		if err := validate.Message(text); err != nil {
			m.err = err
			return m, nil
		}
		return m.send(text)

	case tea.KeyCtrlG:
		if g := m.Genre(); g.IsSpecific() {
			return m.send(string(g) + " prompt")
		}
		return m.send("prompt")

	case tea.KeyCtrlT:
		return m.send("twist")

	case tea.KeyCtrlE:
		return m.send("explain")

	case tea.KeyCtrlS:
		return m.send("save")

	case tea.KeyTab:
		m.genreIdx = (m.genreIdx + 1) % len(model.Genres)
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return m, nil

	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		return m, nil
	}

	return m, nil
}

// send runs one chat turn.
func (m *ChatModel) send(text string) (tea.Model, tea.Cmd) {
	conv, reply := m.engine.Handle(m.conv, text)
	m.conv = conv

	if m.save != nil {
		if err := m.save(conv); err != nil {
			m.err = err
			logging.Warn("failed to save conversation", logging.KeyError, err)
		} else {
			m.err = nil
		}
	}
	if reply.Saved {
		m.refreshFavorites()
	}
	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *ChatModel) refreshFavorites() {
	if m.count != nil {
		m.favorites = m.count()
	}
}

// waitForFavorites blocks until the watcher reports a change.
func (m *ChatModel) waitForFavorites() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return favoritesChangedMsg{}
	}
}

// View renders the chat.
func (m *ChatModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 80
	}

	header := StyleTitle.Render("📖 "+chat.Name) + "  " +
		StyleSubtitle.Render("Type a message, or use the shortcuts below.")

	var sections []string
	sections = append(sections, header)
	sections = append(sections, m.renderTranscript(width))

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections = append(sections, StatusBar{
		Favorites: m.favorites,
		Genre:     m.Genre(),
		Prompts:   m.conv.PromptCount(),
		Width:     width,
	}.View())
	sections = append(sections, StyleInput.Render("> ")+string(m.input)+"█")
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the messages that fit above the status bar.
func (m *ChatModel) renderTranscript(width int) string {
	if len(m.conv.Messages) == 0 {
		return StyleSubtitle.Render("\nAsk for a prompt to begin. Try \"mystery prompt\".\n")
	}

	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}

	var lines []string
	for _, msg := range m.conv.Messages {
		var block string
		switch {
		case msg.Role == model.RoleUser:
			block = StyleUser.Render("You: ") + lipgloss.NewStyle().Width(textWidth-5).Render(msg.Content)
		case msg.Kind == model.MessagePrompt:
			block = StyleMuse.Render("Muse:") + "\n" + StylePrompt.Width(textWidth).Render(msg.Content)
		default:
			block = StyleMuse.Render("Muse: ") + lipgloss.NewStyle().Width(textWidth-6).Render(msg.Content)
		}
		lines = append(lines, strings.Split(block, "\n")...)
	}

	// Keep the tail that fits: header, status, input and help take 6 lines.
	if m.height > 0 {
		avail := m.height - 6
		if avail < 1 {
			avail = 1
		}
		if len(lines) > avail {
			lines = lines[len(lines)-avail:]
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the chat TUI and returns the final conversation.
func Run(cfg ChatConfig) (*model.Conversation, error) {
	m := NewChatModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return m.Conversation(), err
}
