package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
	"github.com/outpost-hq/orgctl/internal/tracker"
)

// Styles
var (
	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	futureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

var stageLabels = map[lifecycle.Stage]string{
	lifecycle.StageRequestSent:    "Request sent",
	lifecycle.StageAuthenticating: "Authenticating",
	lifecycle.StagePolling:        "Provisioning org",
	lifecycle.StageAvailable:      "Org available",
	lifecycle.StageDone:           "Done",
}

// StageLabel returns the display text for a stage.
func StageLabel(stage lifecycle.Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return string(stage)
}

type frameMsg struct{ frame tracker.Frame }

type closeMsg struct{}

// progressModel is the bubbletea model for the staged-creation view.
type progressModel struct {
	spinner  spinner.Model
	frame    tracker.Frame
	haveRows bool
	quitting bool
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = currentStyle
	return progressModel{spinner: s}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg.frame
		m.haveRows = len(msg.frame.Rows) > 0
		return m, nil

	case closeMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if !m.haveRows {
		return ""
	}

	var b strings.Builder
	for _, row := range m.frame.Rows {
		label := StageLabel(row.Stage)
		switch row.Status {
		case lifecycle.StatusCompleted, lifecycle.StatusTerminalCurrent:
			b.WriteString(completedStyle.Render("✓ " + label))
		case lifecycle.StatusCurrent:
			b.WriteString(m.spinner.View() + currentStyle.Render(label))
		default:
			b.WriteString(futureStyle.Render("○ " + label))
		}
		b.WriteString("\n")
	}

	if detail := infoLine(m.frame.Info); detail != "" {
		b.WriteString(detailStyle.Render(detail))
		b.WriteString("\n")
	}
	if m.frame.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.frame.Err)))
		b.WriteString("\n")
	}

	return b.String()
}

func infoLine(info lifecycle.OrgInfo) string {
	var parts []string
	if info.JobID != "" {
		parts = append(parts, "job "+info.JobID)
	}
	if info.OrgID != "" {
		parts = append(parts, "org "+info.OrgID)
	}
	if info.Username != "" {
		parts = append(parts, info.Username)
	}
	return strings.Join(parts, " | ")
}

// ProgressRenderer drives the progress view over a running bubbletea
// program. It implements tracker.Renderer.
type ProgressRenderer struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewProgressRenderer starts the progress program writing to out.
func NewProgressRenderer(out io.Writer) *ProgressRenderer {
	p := tea.NewProgram(newProgressModel(),
		tea.WithOutput(out),
		tea.WithInput(nil))

	r := &ProgressRenderer{program: p, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		_, _ = p.Run()
	}()
	return r
}

// Render sends a frame to the running program.
func (r *ProgressRenderer) Render(f tracker.Frame) {
	r.program.Send(frameMsg{frame: f})
}

// Close shuts the program down and waits for the terminal to be restored.
func (r *ProgressRenderer) Close() {
	r.once.Do(func() {
		r.program.Send(closeMsg{})
		<-r.done
	})
}

// PlainRenderer is the non-interactive fallback: one line per stage
// transition, no spinner, no redraws. It implements tracker.Renderer.
type PlainRenderer struct {
	w       io.Writer
	current lifecycle.Stage
}

// NewPlainRenderer creates a line-oriented renderer writing to w.
func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{w: w}
}

// Render prints a line when the current stage advances, plus the failure
// on a final error frame.
func (r *PlainRenderer) Render(f tracker.Frame) {
	for _, row := range f.Rows {
		switch row.Status {
		case lifecycle.StatusCurrent, lifecycle.StatusTerminalCurrent:
			if row.Stage != r.current {
				r.current = row.Stage
				fmt.Fprintf(r.w, "%s...\n", StageLabel(row.Stage))
			}
		}
	}
	if f.Err != nil {
		fmt.Fprintf(r.w, "✗ %v\n", f.Err)
	}
}

// Close is a no-op; plain output owns no terminal state.
func (r *PlainRenderer) Close() {}

// NewRenderer picks the live progress view on a terminal and the plain
// fallback everywhere else.
func NewRenderer(out *os.File) tracker.Renderer {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return NewProgressRenderer(out)
	}
	return NewPlainRenderer(out)
}
