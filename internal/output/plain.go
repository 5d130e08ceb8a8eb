package output

import (
	"github.com/manav03panchal/muse/internal/model"
)

// PlainFormatter prints bare text suited to pipes and scripts.
type PlainFormatter struct {
	*Formatter
}

// NewPlainFormatter creates a new plain formatter.
func NewPlainFormatter(f *Formatter) *PlainFormatter {
	return &PlainFormatter{Formatter: f}
}

// PrintPrompt prints only the prompt text.
func (p *PlainFormatter) PrintPrompt(prompt *model.Prompt) {
	p.Println(prompt.Text)
}

// PrintPromptList prints one tab separated line per prompt: id, genre, text.
func (p *PlainFormatter) PrintPromptList(prompts []*model.Prompt) {
	for _, pr := range prompts {
		p.Printf("%s\t%s\t%s\n", pr.ID, pr.Genre, pr.Text)
	}
}
