package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	orgerrors "github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/lifecycle"
	"github.com/outpost-hq/orgctl/internal/logging"
	"github.com/outpost-hq/orgctl/internal/platform"
	"github.com/outpost-hq/orgctl/internal/tracker"
)

// State is the orchestrator's position in one creation attempt.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateAsync      State = "async"
	StateWaiting    State = "waiting"
	StateSucceeded  State = "succeeded"
	StateTimedOut   State = "timed-out"
	StateFailed     State = "failed"
)

// Hinter emits a user-facing guidance line outside the rendering surface,
// after it has been torn down.
type Hinter func(format string, args ...interface{})

// Orchestrator runs one provisioning attempt end to end: it wires the
// attempt's event bus to a tracker, invokes the platform client, and maps
// the outcome to the caller's error model. It owns the rendering surface
// and tears it down exactly once on every path.
type Orchestrator struct {
	client   platform.Client
	renderer tracker.Renderer
	program  string
	hint     Hinter
	state    State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHinter overrides where resume hints are written.
func WithHinter(h Hinter) Option {
	return func(o *Orchestrator) { o.hint = h }
}

// WithProgramName overrides the program name used in resume hints.
func WithProgramName(name string) Option {
	return func(o *Orchestrator) { o.program = name }
}

// New creates an Orchestrator around a platform client and a rendering
// surface for the attempt.
func New(client platform.Client, renderer tracker.Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:   client,
		renderer: renderer,
		program:  filepath.Base(os.Args[0]),
		hint:     logging.UserInfo,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State reports the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Create runs one creation attempt. In async mode the attempt resolves as
// soon as the request is accepted; otherwise it is awaited with live
// progress rendering.
func (o *Orchestrator) Create(ctx context.Context, req platform.CreateRequest) (*platform.CreateResult, error) {
	if req.Async {
		return o.createAsync(ctx, req)
	}
	return o.run(func(bus *lifecycle.Bus) (*platform.CreateResult, error) {
		return o.client.CreateScratchOrg(ctx, req, bus)
	})
}

// Resume re-attaches to an existing request by job ID and awaits it with
// the same rendering and error mapping as a synchronous create.
func (o *Orchestrator) Resume(ctx context.Context, jobID string, wait time.Duration) (*platform.CreateResult, error) {
	return o.run(func(bus *lifecycle.Bus) (*platform.CreateResult, error) {
		return o.client.ResumeScratchOrg(ctx, jobID, wait, bus)
	})
}

// run drives one awaited attempt. The tracker subscribes to the bus
// before the attempt starts, so no event can slip past it.
func (o *Orchestrator) run(attempt func(*lifecycle.Bus) (*platform.CreateResult, error)) (*platform.CreateResult, error) {
	o.state = StateRequesting

	bus := lifecycle.NewBus()
	trk := tracker.Track(bus, o.renderer)

	o.state = StateWaiting
	result, err := attempt(bus)
	if err != nil {
		trk.Fail(err)

		var timeout *platform.TimeoutError
		if errors.As(err, &timeout) {
			o.state = StateTimedOut
			o.hint("the request is still running; track it with: %s resume %s", o.program, timeout.JobID)
			return nil, orgerrors.RequestTimeout("scratch org request timed out", err)
		}

		o.state = StateFailed
		return nil, err
	}

	trk.Stop()
	o.state = StateSucceeded
	return result, nil
}

// createAsync submits the request and resolves without awaiting. Nothing
// subscribes to the bus; the surface shows one static request-sent frame
// while the accept round-trip is in flight and is then torn down.
func (o *Orchestrator) createAsync(ctx context.Context, req platform.CreateRequest) (*platform.CreateResult, error) {
	o.state = StateRequesting
	o.renderer.Render(requestSentFrame())

	result, err := o.client.CreateScratchOrg(ctx, req, lifecycle.NewBus())
	if err != nil {
		o.renderer.Close()
		o.state = StateFailed
		return nil, err
	}

	o.renderer.Close()

	o.state = StateAsync
	o.hint("request accepted; resume tracking with: %s resume %s", o.program, result.JobID)
	return result, nil
}

// requestSentFrame is the single static frame shown for an async attempt.
func requestSentFrame() tracker.Frame {
	rows := make([]tracker.Row, len(lifecycle.Stages))
	for i, stage := range lifecycle.Stages {
		rows[i] = tracker.Row{Stage: stage, Status: lifecycle.Classify(stage, lifecycle.StageRequestSent)}
	}
	return tracker.Frame{Rows: rows}
}
