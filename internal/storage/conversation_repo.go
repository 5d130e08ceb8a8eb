package storage

import (
	"github.com/manav03panchal/muse/internal/model"
)

// ConversationRepo keeps the chat conversation between runs.
type ConversationRepo struct {
	db *DB
}

// NewConversationRepo creates a new conversation repository.
func NewConversationRepo(db *DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Load returns the saved conversation, or an empty one if none was saved.
func (r *ConversationRepo) Load() (*model.Conversation, error) {
	conv := model.NewConversation()
	err := r.db.Get(model.KeyConversation, conv)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return model.NewConversation(), nil
		}
		return nil, err
	}
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}
	return conv, nil
}

// Save persists the conversation.
func (r *ConversationRepo) Save(conv *model.Conversation) error {
	conv.Key = model.KeyConversation
	return r.db.Set(conv)
}

// Clear deletes the saved conversation.
func (r *ConversationRepo) Clear() error {
	return r.db.Delete(model.KeyConversation)
}
