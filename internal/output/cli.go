package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/muse/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorAccent  = lipgloss.Color("#10B981") // Green
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleGenre = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	stylePromptBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Genre formats a genre label.
func (c *CLIFormatter) Genre(g model.Genre) string {
	return c.render(styleGenre, g.Label())
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// wrap breaks text to the terminal width minus the box frame.
func (c *CLIFormatter) wrap(text string) string {
	width := c.Width() - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// PrintPrompt prints a prompt with its genre and id.
func (c *CLIFormatter) PrintPrompt(p *model.Prompt) {
	if c.IsColorEnabled() {
		c.Println(stylePromptBox.Render(c.wrap(p.Text)))
	} else {
		c.Println(c.wrap(p.Text))
	}
	meta := fmt.Sprintf("  %s · id %s · %s", c.Genre(p.Genre), p.ID, FormatTimestamp(p.CreatedAt))
	if p.IsSaved() {
		meta += " · saved " + FormatTimestamp(p.SavedAt)
	}
	c.Println(c.render(styleMuted, meta))
}

// PrintNoCurrent prints the hint shown when no prompt exists yet.
func (c *CLIFormatter) PrintNoCurrent() {
	c.Muted("No current prompt.")
	c.Muted("Use 'muse prompt [genre]' to get one.")
}

// PrintLabeled prints a twist or explanation under its label.
func (c *CLIFormatter) PrintLabeled(label, text string) {
	c.Println(c.render(styleTitle, label))
	c.Println(c.wrap(text))
}

// PrintPromptList prints prompts as a numbered list.
func (c *CLIFormatter) PrintPromptList(title string, prompts []*model.Prompt, empty string) {
	if len(prompts) == 0 {
		c.Muted(empty)
		return
	}

	c.Title(fmt.Sprintf("%s (%d)", title, len(prompts)))
	width := c.Width() - 8
	if width < 20 {
		width = 20
	}
	for i, p := range prompts {
		c.Printf("%3d. %s\n", i+1, p.Short(width))
		when := p.CreatedAt
		if p.IsSaved() {
			when = p.SavedAt
		}
		c.Println(c.render(styleMuted,
			fmt.Sprintf("     %s · %s · %s", p.ID, p.Genre.Label(), FormatTimestamp(when))))
	}
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(lipgloss.NewStyle().Bold(true), strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
