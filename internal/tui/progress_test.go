package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
	"github.com/outpost-hq/orgctl/internal/tracker"
)

// frameAt builds a full stage-list frame with the given current stage.
func frameAt(current lifecycle.Stage, err error) tracker.Frame {
	f := tracker.Frame{Err: err, Done: current.Terminal()}
	f.Rows = make([]tracker.Row, len(lifecycle.Stages))
	for i, stage := range lifecycle.Stages {
		f.Rows[i] = tracker.Row{Stage: stage, Status: lifecycle.Classify(stage, current)}
	}
	return f
}

func updateWith(t *testing.T, m progressModel, msg frameMsg) progressModel {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(progressModel)
	if !ok {
		t.Fatalf("Update returned %T, want progressModel", updated)
	}
	return next
}

func TestProgressModel_ViewBeforeFirstFrame(t *testing.T) {
	m := newProgressModel()
	if view := m.View(); view != "" {
		t.Errorf("View() = %q, want empty before first frame", view)
	}
}

func TestProgressModel_ViewShowsAllStages(t *testing.T) {
	m := updateWith(t, newProgressModel(), frameMsg{frame: frameAt(lifecycle.StagePolling, nil)})

	view := m.View()
	for _, stage := range lifecycle.Stages {
		if !strings.Contains(view, StageLabel(stage)) {
			t.Errorf("View() missing label for stage %s", stage)
		}
	}
}

func TestProgressModel_CompletedMarks(t *testing.T) {
	m := updateWith(t, newProgressModel(), frameMsg{frame: frameAt(lifecycle.StagePolling, nil)})

	view := m.View()
	// request-sent and authenticating precede polling, so two check marks.
	if got := strings.Count(view, "✓"); got != 2 {
		t.Errorf("View() has %d completed marks, want 2:\n%s", got, view)
	}
	// available and done are still future.
	if got := strings.Count(view, "○"); got != 2 {
		t.Errorf("View() has %d future marks, want 2:\n%s", got, view)
	}
}

func TestProgressModel_TerminalStageChecked(t *testing.T) {
	m := updateWith(t, newProgressModel(), frameMsg{frame: frameAt(lifecycle.StageDone, nil)})

	view := m.View()
	if got := strings.Count(view, "✓"); got != len(lifecycle.Stages) {
		t.Errorf("View() has %d completed marks, want all %d:\n%s", got, len(lifecycle.Stages), view)
	}
	if strings.Contains(view, "○") {
		t.Errorf("View() still shows future stages after done:\n%s", view)
	}
}

func TestProgressModel_ErrorFrame(t *testing.T) {
	failure := errors.New("org quota exceeded")
	m := updateWith(t, newProgressModel(), frameMsg{frame: frameAt(lifecycle.StagePolling, failure)})

	view := m.View()
	if !strings.Contains(view, "org quota exceeded") {
		t.Errorf("View() missing failure text:\n%s", view)
	}
	if !strings.Contains(view, "✗") {
		t.Errorf("View() missing failure mark:\n%s", view)
	}
}

func TestProgressModel_InfoLine(t *testing.T) {
	f := frameAt(lifecycle.StageAvailable, nil)
	f.Info = lifecycle.OrgInfo{JobID: "0Rx000000000001", Username: "test@scratch.example.com"}
	m := updateWith(t, newProgressModel(), frameMsg{frame: f})

	view := m.View()
	if !strings.Contains(view, "0Rx000000000001") {
		t.Errorf("View() missing job ID:\n%s", view)
	}
	if !strings.Contains(view, "test@scratch.example.com") {
		t.Errorf("View() missing username:\n%s", view)
	}
}

func TestPlainRenderer_LinePerTransition(t *testing.T) {
	var out strings.Builder
	r := NewPlainRenderer(&out)

	r.Render(frameAt(lifecycle.StageRequestSent, nil))
	r.Render(frameAt(lifecycle.StageRequestSent, nil)) // repeat, no new line
	r.Render(frameAt(lifecycle.StagePolling, nil))
	r.Render(frameAt(lifecycle.StageDone, nil))
	r.Close()

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		StageLabel(lifecycle.StageRequestSent) + "...",
		StageLabel(lifecycle.StagePolling) + "...",
		StageLabel(lifecycle.StageDone) + "...",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPlainRenderer_FailureLine(t *testing.T) {
	var out strings.Builder
	r := NewPlainRenderer(&out)

	r.Render(frameAt(lifecycle.StagePolling, errors.New("org quota exceeded")))

	if !strings.Contains(out.String(), "✗ org quota exceeded") {
		t.Errorf("output = %q, want failure line", out.String())
	}
}

func TestStageLabel_UnknownFallsBack(t *testing.T) {
	if got := StageLabel(lifecycle.Stage("mystery")); got != "mystery" {
		t.Errorf("StageLabel() = %q, want raw stage name", got)
	}
}
