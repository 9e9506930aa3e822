package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/outpost-hq/orgctl/internal/readiness"
)

// waitModel is the bubbletea model for the domain-wait spinner.
type waitModel struct {
	spinner spinner.Model
	message string
}

func newWaitModel(message string) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = currentStyle
	return waitModel{spinner: s, message: message}
}

func (m waitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m waitModel) View() string {
	return m.spinner.View() + " " + m.message + "\n"
}

// WaitSpinner shows a spinner while the readiness poller waits for a
// domain to propagate. It implements readiness.Sink.
type WaitSpinner struct {
	out     io.Writer
	message string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewWaitSpinner creates a spinner that writes to out when started.
func NewWaitSpinner(out io.Writer, message string) *WaitSpinner {
	return &WaitSpinner{out: out, message: message}
}

// StartWaiting starts the spinner. Extra starts are ignored.
func (s *WaitSpinner) StartWaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}

	s.program = tea.NewProgram(newWaitModel(s.message),
		tea.WithOutput(s.out),
		tea.WithInput(nil))
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

// StopWaiting stops the spinner and waits for the terminal to be
// restored. Stopping an idle spinner is a no-op.
func (s *WaitSpinner) StopWaiting() {
	s.mu.Lock()
	program, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if program == nil {
		return
	}
	program.Send(closeMsg{})
	<-done
}

// PlainWait is the non-interactive fallback: a single line when the wait
// begins, nothing after. It implements readiness.Sink.
type PlainWait struct {
	w       io.Writer
	message string

	mu      sync.Mutex
	started bool
}

// NewPlainWait creates a line-oriented wait indicator writing to w.
func NewPlainWait(w io.Writer, message string) *PlainWait {
	return &PlainWait{w: w, message: message}
}

func (s *PlainWait) StartWaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	fmt.Fprintf(s.w, "%s\n", s.message)
}

func (s *PlainWait) StopWaiting() {}

// NewSink picks the spinner on a terminal and the plain fallback
// everywhere else.
func NewSink(out *os.File, message string) readiness.Sink {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return NewWaitSpinner(out, message)
	}
	return NewPlainWait(out, message)
}
