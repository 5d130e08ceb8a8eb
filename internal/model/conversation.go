package model

import "time"

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageKind tags assistant messages that carry a prompt.
type MessageKind string

const (
	MessageText   MessageKind = ""
	MessagePrompt MessageKind = "prompt"
)

// Message is a single turn in a conversation.
type Message struct {
	Role     Role        `json:"role"`
	Content  string      `json:"content"`
	Kind     MessageKind `json:"type,omitempty"`
	PromptID string      `json:"prompt_id,omitempty"`
	At       time.Time   `json:"at"`
}

// Conversation is the chat session state. It is passed into and returned
// from the chat engine rather than held by it.
type Conversation struct {
	Key      string    `json:"key"`
	Messages []Message `json:"messages"`
	Current  *Prompt   `json:"current,omitempty"`
}

// SetKey sets the database key.
func (c *Conversation) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key.
func (c *Conversation) GetKey() string {
	return c.Key
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{Key: KeyConversation, Messages: []Message{}}
}

// PromptCount returns the number of prompt messages in the conversation.
func (c *Conversation) PromptCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Kind == MessagePrompt {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return NewConversation()
	}
	out := &Conversation{
		Key:      c.Key,
		Messages: make([]Message, len(c.Messages)),
		Current:  c.Current.Clone(),
	}
	copy(out.Messages, c.Messages)
	return out
}
