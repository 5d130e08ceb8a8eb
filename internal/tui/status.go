package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/muse/internal/model"
)

// StatusBar shows the favorites count, selected genre and prompt count.
type StatusBar struct {
	Favorites int
	Genre     model.Genre
	Prompts   int
	Width     int
}

// View renders the status bar.
func (sb StatusBar) View() string {
	text := fmt.Sprintf("⭐ Favorites: %d  •  🎭 Genre: %s  •  📝 Prompts: %d",
		sb.Favorites, sb.Genre.Label(), sb.Prompts)
	style := StyleStatusBar
	if sb.Width > 0 {
		style = style.Width(sb.Width)
	}
	return style.Render(text)
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"enter", "send"},
		{"^g", "prompt"},
		{"^t", "twist"},
		{"^e", "explain"},
		{"^s", "save"},
		{"tab", "genre"},
		{"esc", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
