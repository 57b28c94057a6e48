// Package watcher provides debounced file system watching for the library
// database, so edits made by another inkwell process show up without a
// restart.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
)

// Change is published after the library database settles following a write.
type Change struct {
	// Path is the watched database file.
	Path string
}

// Watcher monitors the library database file for external changes and
// publishes a debounced reload event.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	debounce  time.Duration
	events    *pubsub.Broker[Change]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	// DBPath is the library database file to watch.
	DBPath string

	// DebounceDur collapses bursts of writes into one event.
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: time.Second,
	}
}

// New creates a watcher for the library database.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		dbPath:    cfg.DBPath,
		debounce:  cfg.DebounceDur,
		events:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
	}, nil
}

// Broker exposes the change-event broker. Subscribe before calling Start to
// avoid missing the first event.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.events
}

// Start begins watching the database directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	log.Debug(log.CatWatcher, "Watching library database", "dir", dir)
	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.events.Close()
	return err
}

// loop coalesces raw file events into debounced reload events.
func (w *Watcher) loop() {
	var timer *time.Timer
	var pending bool

	// nil until the first relevant event arrives; a nil channel never fires.
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC:
			if pending {
				pending = false
				log.Debug(log.CatWatcher, "Library changed on disk")
				w.events.Publish(pubsub.UpdatedEvent, Change{Path: w.dbPath})
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether the event touches the database or its WAL.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	dbBase := filepath.Base(w.dbPath)
	return base == dbBase || base == dbBase+"-wal"
}
