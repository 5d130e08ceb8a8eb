// Package favorites persists saved prompts in a single JSON file.
//
// Every operation loads the whole file, works on the in-memory slice and,
// for mutations, rewrites the whole file. The Store keeps nothing in memory
// besides its location. There is no locking: when several sessions share one
// file the last write wins, and a read-modify-write from one session can
// drop an entry added concurrently by another.
//
// Failures never escape the Store. Reads degrade to an empty collection and
// writes to false; the condition is passed to the Reporter, which logs it by
// default.
package favorites

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/model"
)

// FileName is the default favorites file name.
const FileName = "favorites.json"

// Reporter receives failures the Store absorbed.
type Reporter func(op string, err error)

// document is the on-disk layout of the favorites file.
type document struct {
	Favorites   []*model.Prompt `json:"favorites"`
	LastUpdated model.Timestamp `json:"last_updated"`
	Count       int             `json:"count"`
}

// Store manages the favorites collection at one path.
type Store struct {
	path    string
	report  Reporter
	now     func() time.Time
	newID   func() string
	minFree uint64
}

// Option configures a Store.
type Option func(*Store)

// WithReporter sets the function that receives absorbed failures.
func WithReporter(r Reporter) Option {
	return func(s *Store) {
		if r != nil {
			s.report = r
		}
	}
}

// WithClock sets the clock used for saved_at and last_updated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc sets the function that assigns ids to prompts saved without one.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithMinFreeSpace sets the free disk space required before writing.
func WithMinFreeSpace(n uint64) Option {
	return func(s *Store) {
		s.minFree = n
	}
}

// New returns a Store for path. If the file does not exist it is created
// with an empty collection; failure to do so is reported, not returned.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		report:  logReporter(path),
		now:     time.Now,
		newID:   newID,
		minFree: DefaultMinFreeSpace,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write([]*model.Prompt{}); err != nil {
			s.report("init", err)
		}
	}
	return s
}

// DefaultPath returns the favorites file path inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Path returns the location of the favorites file.
func (s *Store) Path() string {
	return s.path
}

// LoadAll returns every saved prompt in insertion order. A missing file
// yields an empty slice; unreadable or malformed content is reported and
// also yields an empty slice. The result is never nil.
func (s *Store) LoadAll() []*model.Prompt {
	favorites, err := s.load()
	if err != nil {
		s.report("load", err)
		return []*model.Prompt{}
	}
	logging.LogOperation("load_favorites", logging.KeyCount, len(favorites))
	return favorites
}

// Add saves p unless a favorite with the same text already exists. SavedAt
// and ID are filled in on p when absent. It returns false for duplicates and
// for failures; storage is only written when p is appended.
func (s *Store) Add(p *model.Prompt) bool {
	if p == nil {
		return false
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.SavedAt.IsZero() {
		p.SavedAt = model.NewTimestamp(s.now())
	}

	favorites, err := s.load()
	if err != nil {
		// An unreadable file is left untouched.
		s.report("add", err)
		return false
	}

	for _, fav := range favorites {
		if fav.Text == p.Text {
			logging.DebugLog("prompt already in favorites", logging.KeyPromptID, fav.ID)
			return false
		}
	}

	favorites = append(favorites, p)
	if err := s.write(favorites); err != nil {
		s.report("add", err)
		return false
	}

	logging.LogOperation("add_favorite", logging.KeyPromptID, p.ID, logging.KeyCount, len(favorites))
	return true
}

// Remove deletes every favorite whose id matches. It returns whether
// anything was removed; the file is only rewritten in that case.
func (s *Store) Remove(id string) bool {
	favorites, err := s.load()
	if err != nil {
		s.report("remove", err)
		return false
	}

	filtered := make([]*model.Prompt, 0, len(favorites))
	for _, fav := range favorites {
		if fav.ID != id {
			filtered = append(filtered, fav)
		}
	}

	if len(filtered) == len(favorites) {
		logging.DebugLog("favorite not found", logging.KeyPromptID, id)
		return false
	}

	if err := s.write(filtered); err != nil {
		s.report("remove", err)
		return false
	}

	logging.LogOperation("remove_favorite", logging.KeyPromptID, id, logging.KeyCount, len(filtered))
	return true
}

// Find returns the favorite with the given id.
func (s *Store) Find(id string) (*model.Prompt, bool) {
	for _, fav := range s.LoadAll() {
		if fav.ID == id {
			return fav, true
		}
	}
	return nil, false
}

// load reads and decodes the favorites file.
func (s *Store) load() ([]*model.Prompt, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Prompt{}, nil
	}
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("open", "cannot open favorites file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("read", "cannot read favorites file", err)
	}

	if err := validateDocument(data); err != nil {
		return nil, errors.NewSystemError(err.Error(), errors.ErrCorruptedStore)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("cannot decode favorites: %v", err), errors.ErrCorruptedStore)
	}

	favorites := make([]*model.Prompt, 0, len(doc.Favorites))
	for _, fav := range doc.Favorites {
		if fav != nil {
			favorites = append(favorites, fav)
		}
	}
	return favorites, nil
}

// write replaces the favorites file with the given collection.
func (s *Store) write(favorites []*model.Prompt) error {
	if favorites == nil {
		favorites = []*model.Prompt{}
	}
	doc := document{
		Favorites:   favorites,
		LastUpdated: model.NewTimestamp(s.now()),
		Count:       len(favorites),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode favorites")
	}

	return SafeWrite(s.path, append(data, '\n'), 0o644, s.minFree)
}

func logReporter(path string) Reporter {
	return func(op string, err error) {
		logging.Warn("favorites operation failed",
			logging.KeyOperation, op,
			logging.KeyPath, path,
			logging.KeyError, err,
		)
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
