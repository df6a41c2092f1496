// Package presets watches an external variants file and hands its new
// contents to the game loop whenever it changes on disk.
package presets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Event carries the file contents after a change, or the error that
// prevented reading them.
type Event struct {
	Data []byte
	Err  error
}

// Watcher reports changes to one file.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	events   chan Event
	cancel   context.CancelFunc
	done     chan struct{}
}

// Watch starts watching path until ctx is done or Close is called. The
// parent directory is watched so that editors replacing the file by rename
// are still seen.
func Watch(ctx context.Context, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		events:   make(chan Event, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Events delivers at most one pending change; a newer change replaces an
// unread one. The channel is closed when the watcher stops.
func (w *Watcher) Events() <-chan Event { return w.events }

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.send(Event{Err: err})
		case <-timer.C:
			data, err := os.ReadFile(w.path)
			w.send(Event{Data: data, Err: err})
		}
	}
}

func (w *Watcher) send(ev Event) {
	for {
		select {
		case w.events <- ev:
			return
		default:
		}
		// drop the unread event in favor of the newer one
		select {
		case <-w.events:
		default:
		}
	}
}
