// Package assets loads the viewer's model and background decorations from an
// embedded file system and reports progress over a channel.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/automoto/flyby/components"
)

var (
	//go:embed all:models all:maps
	assetFS embed.FS
)

// FS returns the embedded asset tree.
func FS() fs.FS { return assetFS }

// ErrLoadFailure wraps every error that ends a load.
var ErrLoadFailure = errors.New("asset load failed")

// Request names what to load. Decorations is optional.
type Request struct {
	Model       string
	Decorations string
}

// EventKind tells which fields of an Event are set.
type EventKind int

const (
	EventProgress EventKind = iota
	EventComplete
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventComplete:
		return "complete"
	case EventFailed:
		return "failed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one step of a load. A load emits any number of progress events
// followed by exactly one complete or failed event, then the channel closes.
type Event struct {
	Kind   EventKind
	Loaded int
	Total  int

	Model       *Model
	Decorations []components.Decoration
	Err         error
}

// Loader reads assets from a file system.
type Loader struct {
	fsys fs.FS
	// Pace is slept between steps so the progress overlay is visible with
	// small embedded files. Zero loads as fast as possible.
	Pace time.Duration
}

// NewLoader returns a loader over fsys, or over the embedded assets when fsys is nil.
func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = assetFS
	}
	return &Loader{fsys: fsys}
}

// Load starts loading req in the background. Cancelling ctx stops the load
// and closes the channel without a terminal event.
func (l *Loader) Load(ctx context.Context, req Request) <-chan Event {
	ch := make(chan Event, 8)
	go func() {
		defer close(ch)
		l.run(ctx, req, ch)
	}()
	return ch
}

func (l *Loader) run(ctx context.Context, req Request, ch chan<- Event) {
	send := func(ev Event) bool {
		select {
		case <-ctx.Done():
			return false
		case ch <- ev:
			return true
		}
	}
	fail := func(err error) {
		send(Event{Kind: EventFailed, Err: fmt.Errorf("%w: %w", ErrLoadFailure, err)})
	}

	f, err := l.fsys.Open(req.Model)
	if err != nil {
		fail(err)
		return
	}
	model, err := ParseModel(req.Model, f)
	f.Close()
	if err != nil {
		fail(err)
		return
	}

	// one step for the file, one per mesh, one for the decorations
	total := 1 + model.MeshCount()
	if req.Decorations != "" {
		total++
	}
	loaded := 1
	if !send(Event{Kind: EventProgress, Loaded: loaded, Total: total}) {
		return
	}
	for range model.MeshCount() {
		if !l.wait(ctx) {
			return
		}
		loaded++
		if !send(Event{Kind: EventProgress, Loaded: loaded, Total: total}) {
			return
		}
	}

	var decorations []components.Decoration
	if req.Decorations != "" {
		decorations, err = LoadDecorations(l.fsys, req.Decorations)
		if err != nil {
			// the scene works without a backdrop
			log.Printf("Warning: decorations %s: %v", req.Decorations, err)
		}
		loaded++
		if !send(Event{Kind: EventProgress, Loaded: loaded, Total: total}) {
			return
		}
	}
	send(Event{Kind: EventComplete, Loaded: loaded, Total: total, Model: model, Decorations: decorations})
}

func (l *Loader) wait(ctx context.Context) bool {
	if l.Pace <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(l.Pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
