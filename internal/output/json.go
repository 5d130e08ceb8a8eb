package output

import (
	"github.com/manav03panchal/muse/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// PromptOutput represents a prompt in JSON output.
type PromptOutput struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Character string `json:"character"`
	Setting   string `json:"setting"`
	Conflict  string `json:"conflict"`
	Genre     string `json:"genre"`
	CreatedAt string `json:"created_at"`
	SavedAt   string `json:"saved_at,omitempty"`
}

// NewPromptOutput creates a PromptOutput from a Prompt.
func NewPromptOutput(p *model.Prompt) *PromptOutput {
	return &PromptOutput{
		ID:        p.ID,
		Text:      p.Text,
		Character: p.Character,
		Setting:   p.Setting,
		Conflict:  p.Conflict,
		Genre:     string(p.Genre),
		CreatedAt: p.CreatedAt.String(),
		SavedAt:   p.SavedAt.String(),
	}
}

// PromptResponse represents a single prompt result.
type PromptResponse struct {
	Status string        `json:"status"`
	Prompt *PromptOutput `json:"prompt,omitempty"`
}

// PromptsResponse represents a list of prompts.
type PromptsResponse struct {
	Prompts []*PromptOutput `json:"prompts"`
	Count   int             `json:"count"`
}

// NewPromptsResponse creates a PromptsResponse from prompts.
func NewPromptsResponse(prompts []*model.Prompt) *PromptsResponse {
	outputs := make([]*PromptOutput, len(prompts))
	for i, p := range prompts {
		outputs[i] = NewPromptOutput(p)
	}
	return &PromptsResponse{Prompts: outputs, Count: len(outputs)}
}

// TextResponse represents a twist, explanation or chat reply.
type TextResponse struct {
	Status   string `json:"status"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	PromptID string `json:"prompt_id,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintPrompt outputs a prompt with the given status ("generated",
// "current", "saved", "duplicate", "none").
func (j *JSONFormatter) PrintPrompt(status string, p *model.Prompt) error {
	resp := PromptResponse{Status: status}
	if p != nil {
		resp.Prompt = NewPromptOutput(p)
	}
	return j.JSON(resp)
}

// PrintPrompts outputs a list of prompts.
func (j *JSONFormatter) PrintPrompts(prompts []*model.Prompt) error {
	return j.JSON(NewPromptsResponse(prompts))
}

// PrintText outputs a text reply.
func (j *JSONFormatter) PrintText(kind, text, promptID string) error {
	return j.JSON(TextResponse{
		Status:   "ok",
		Kind:     kind,
		Text:     text,
		PromptID: promptID,
	})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}
