package tui

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/manav03panchal/muse/internal/logging"
)

// FileWatcher reports changes to a single file. The parent directory is
// watched so atomic replace-by-rename is seen as well as in-place writes.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
}

// WatchFile starts watching path.
func WatchFile(path string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: w,
		path:    path,
		changes: make(chan struct{}, 1),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) loop() {
	defer close(fw.changes)
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				// Coalesce bursts into one pending notification.
				select {
				case fw.changes <- struct{}{}:
				default:
				}
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.DebugLog("watch error", logging.KeyPath, fw.path, logging.KeyError, err)
		}
	}
}

// Changes delivers a value after the file changes. It is closed by Close.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
