package storage

import (
	"github.com/manav03panchal/muse/internal/model"
)

// SessionRepo keeps the current prompt singleton.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Current returns the current prompt, or nil if there is none.
func (r *SessionRepo) Current() (*model.Prompt, error) {
	current := &model.CurrentPrompt{}
	err := r.db.Get(model.KeyCurrent, current)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return current.Prompt, nil
}

// SetCurrent makes p the current prompt.
func (r *SessionRepo) SetCurrent(p *model.Prompt) error {
	if p == nil {
		return r.ClearCurrent()
	}
	return r.db.Set(&model.CurrentPrompt{Key: model.KeyCurrent, Prompt: p})
}

// ClearCurrent forgets the current prompt.
func (r *SessionRepo) ClearCurrent() error {
	return r.db.Delete(model.KeyCurrent)
}
