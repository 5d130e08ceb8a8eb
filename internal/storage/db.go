// Package storage keeps Muse session state in a Badger database: the
// current prompt, the history of generated prompts and the chat
// conversation. Favorites live in their own JSON file (see package
// favorites); nothing here touches that file.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

// AppName is the data directory name under the XDG data home.
const AppName = "muse"

// sessionValueLogSize keeps value log files small; session values are a
// few kilobytes at most.
const sessionValueLogSize = 16 << 20

// DB is the session database.
type DB struct {
	db   *badger.DB
	path string
}

// Options configures Open.
type Options struct {
	// Path is the database directory. Empty means in memory.
	Path     string
	InMemory bool
}

func (o Options) inMemory() bool {
	return o.InMemory || o.Path == ""
}

// DefaultPath returns $XDG_DATA_HOME/muse/session.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "session")
}

// Open opens the session database, creating its directory if needed.
func Open(opts Options) (*DB, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.inMemory() {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, err
	}

	bopts = bopts.
		WithLoggingLevel(badger.ERROR).
		WithNumVersionsToKeep(1)
	if !opts.inMemory() {
		bopts = bopts.WithValueLogFileSize(sessionValueLogSize)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	d := &DB{db: db}
	if !opts.inMemory() {
		d.path = opts.Path
	}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database directory, or "" when in memory.
func (d *DB) Path() string {
	return d.path
}
