// Package tracker consumes lifecycle events for one creation attempt and
// drives a progress view. It owns all visible progress output while the
// attempt is running; it performs no network or API calls itself.
package tracker

import (
	"sync"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
)

// Row is the presentation state of one canonical stage.
type Row struct {
	Stage  lifecycle.Stage
	Status lifecycle.StageStatus
}

// Frame is a full snapshot of the progress view: one row per canonical
// stage plus whatever org info has arrived so far. Err is set only on the
// final frame of a failed attempt.
type Frame struct {
	Rows []Row
	Info lifecycle.OrgInfo
	Err  error
	Done bool
}

// Renderer receives frames and owns the live rendering surface.
// Close tears the surface down; it is called exactly once per attempt.
type Renderer interface {
	Render(Frame)
	Close()
}

// Tracker follows staged-creation events for one attempt. It stores the
// most recent event, re-renders the stage list on each one, and stops
// after the terminal stage or a failure signaled by the orchestrator.
type Tracker struct {
	mu          sync.Mutex
	renderer    Renderer
	unsubscribe func()
	last        *lifecycle.Event
	finished    bool
	closed      bool
}

// Track subscribes a new Tracker to bus. The subscription is established
// synchronously, so events published after Track returns are never missed.
func Track(bus *lifecycle.Bus, r Renderer) *Tracker {
	t := &Tracker{renderer: r}
	t.unsubscribe = bus.Subscribe(t.handle)
	return t
}

// handle processes one lifecycle event: store it and re-render. On the
// terminal stage the tracker unsubscribes and ignores anything further.
func (t *Tracker) handle(ev lifecycle.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	t.last = &ev
	t.renderer.Render(t.frame(nil))

	if ev.Stage.Terminal() {
		t.finished = true
		t.unsubscribe()
	}
}

// Fail renders one final frame merging the last known event with err,
// then tears down. The tracker never raises errors of its own; it only
// displays the one handed to it.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	if !t.finished {
		t.finished = true
		t.unsubscribe()
		t.renderer.Render(t.frame(err))
	}
	t.mu.Unlock()

	t.Stop()
}

// Stop tears down the rendering surface. Idempotent; every exit path of
// the surrounding attempt must end up here exactly once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.finished {
		t.finished = true
		t.unsubscribe()
	}
	if !t.closed {
		t.closed = true
		t.renderer.Close()
	}
}

// LastEvent returns the most recently observed event, or nil before the
// first one.
func (t *Tracker) LastEvent() *lifecycle.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// frame builds the presentation snapshot from the last observed event.
func (t *Tracker) frame(err error) Frame {
	f := Frame{Err: err}

	current := lifecycle.Stage("")
	if t.last != nil {
		current = t.last.Stage
		f.Info = t.last.Info
	}
	f.Done = current.Terminal()

	f.Rows = make([]Row, len(lifecycle.Stages))
	for i, stage := range lifecycle.Stages {
		f.Rows[i] = Row{Stage: stage, Status: lifecycle.Classify(stage, current)}
	}

	return f
}
