package storage

import (
	"github.com/manav03panchal/muse/internal/model"
)

// HistoryRepo keeps every prompt generated in this data directory.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new history repository.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record appends a prompt to the history.
func (r *HistoryRepo) Record(p *model.Prompt) error {
	return r.db.Set(model.NewHistoryEntry(p))
}

// List returns up to limit prompts, newest first. A limit of zero or less
// returns the whole history.
func (r *HistoryRepo) List(limit int) ([]*model.Prompt, error) {
	entries, err := GetAllByPrefix(r.db, model.PrefixHistory+":", true, limit, func() *model.HistoryEntry {
		return &model.HistoryEntry{}
	})
	if err != nil {
		return nil, err
	}

	prompts := make([]*model.Prompt, 0, len(entries))
	for _, e := range entries {
		if e.Prompt != nil {
			prompts = append(prompts, e.Prompt)
		}
	}
	return prompts, nil
}

// Get returns the history prompt with the given id.
func (r *HistoryRepo) Get(id string) (*model.Prompt, error) {
	entry := &model.HistoryEntry{}
	if err := r.db.Get(model.GenerateHistoryKey(id), entry); err != nil {
		return nil, err
	}
	return entry.Prompt, nil
}

// Clear removes the whole history and returns how many entries were dropped.
func (r *HistoryRepo) Clear() (int, error) {
	return r.db.DeleteByPrefix(model.PrefixHistory + ":")
}
