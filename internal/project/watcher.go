package project

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a detected plan-file change.
type Change struct {
	File string // absolute path
}

// Watcher monitors a plan file for edits using fsnotify, debouncing
// rapid save bursts from editors into single change events.
type Watcher struct {
	Path    string
	Changes <-chan Change // read-only external channel

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given plan file.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Path:    path,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching. The containing directory is watched rather
// than the file itself, because editors that write-rename would
// otherwise drop the watch after the first save.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending *time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if pending != nil {
					w.changes <- Change{File: w.Path}
				}
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.Path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				now := time.Now()
				pending = &now
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if pending != nil && time.Since(*pending) >= debounce {
				pending = nil
				w.changes <- Change{File: w.Path}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event still arrives.
		}
	}
}
