package ui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/adb-autoconnect/internal/logging"
)

// spinnerDoneMsg tells the spinner program the operation has returned.
type spinnerDoneMsg struct{}

// spinnerModel shows a spinner next to a label until the operation returns
// or the user presses ctrl+c.
type spinnerModel struct {
	spinner     spinner.Model
	label       string
	done        bool
	interrupted bool
}

func newSpinnerModel(label string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(SpinnerStyle),
		),
		label: label,
	}
}

// Init implements tea.Model
func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m spinnerModel) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return m.spinner.View() + " " + SpinnerLabelStyle.Render(m.label)
}

// SpinnerEnabled reports whether RunWithSpinner should animate: the level
// must be info or verbose, the error stream must be a terminal, and so must
// stdin.
func (r *Reporter) SpinnerEnabled() bool {
	f, ok := r.errOut.(*os.File)
	return ok && r.level.Enabled(logging.LevelInfo) && IsTerminal(f) && IsTerminal(os.Stdin)
}

// RunWithSpinner runs fn while a spinner labelled label is drawn on stderr.
// When enabled is false fn is simply called. Pressing ctrl+c cancels the
// context passed to fn.
func RunWithSpinner[T any](ctx context.Context, enabled bool, label string, fn func(context.Context) (T, error)) (T, error) {
	if !enabled {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		value T
		err   error
	)
	done := make(chan struct{})

	// The program gets its own context so stopping it never cancels fn.
	progCtx, stopProgram := context.WithCancel(context.Background())
	defer stopProgram()

	p := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(os.Stderr), tea.WithContext(progCtx))

	go func() {
		defer close(done)
		value, err = fn(ctx)
		p.Send(spinnerDoneMsg{})
	}()

	if _, runErr := p.Run(); runErr != nil {
		// The terminal could not be driven; let fn finish on its own.
		stopProgram()
		<-done
		return value, err
	}

	// Quit before fn returned means ctrl+c.
	cancel()
	<-done
	return value, err
}
