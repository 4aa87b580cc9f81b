package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gridboard/log"
)

// DeckWatcher watches a deck file and invokes a callback when its content
// changes. The parent directory is watched rather than the file itself:
// most editors save by writing a temp file and renaming it over the
// original, which would silently kill a watch on the file's inode.
type DeckWatcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce *Debouncer
	onChange func()
	done     chan struct{}
}

// WatchDeck starts watching the deck at path. onChange runs on the
// watcher's goroutine after changes settle for the debounce window; the
// callback must hand work off (typically by sending a message into the UI
// loop) rather than doing anything slow.
func WatchDeck(path string, debounce time.Duration, onChange func()) (*DeckWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deck path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	dw := &DeckWatcher{
		path:     abs,
		fsw:      fsw,
		debounce: NewDebouncer(debounce),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go dw.loop()

	log.InfoLog.Printf("watching deck %s", abs)
	return dw, nil
}

func (dw *DeckWatcher) loop() {
	for {
		select {
		case event, ok := <-dw.fsw.Events:
			if !ok {
				return
			}
			if !dw.relevant(event) {
				continue
			}
			log.Debug("deck event: %s", event)
			dw.debounce.Trigger(dw.onChange)
		case err, ok := <-dw.fsw.Errors:
			if !ok {
				return
			}
			log.WarningLog.Printf("deck watcher error: %v", err)
		case <-dw.done:
			return
		}
	}
}

// relevant filters directory events down to ones that change the deck file.
func (dw *DeckWatcher) relevant(event fsnotify.Event) bool {
	if event.Name != dw.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}

// Path returns the watched deck path.
func (dw *DeckWatcher) Path() string {
	return dw.path
}

// Close stops the watcher and drops any pending callback.
func (dw *DeckWatcher) Close() error {
	close(dw.done)
	dw.debounce.Cancel()
	return dw.fsw.Close()
}
