// Package progress shows run progress to the user: a spinner while a
// request is in flight on an interactive terminal, and a plain start line
// plus an elapsed-time line everywhere else.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the spinner and status colors; the success/error colors
// match the status colors in internal/executor/render_color.go.
type Styles struct {
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns quest's spinner/status color palette.
func DefaultStyles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Run executes fn while showing label as progress feedback. On an
// interactive terminal with plain=false, a bubbletea spinner is shown
// until fn returns; otherwise "<label>..." is printed before fn runs and
// "<label> in <elapsed>" after it returns, per spec's --plain/non-tty
// fallback.
func Run(out io.Writer, label string, plain bool, fn func() error) error {
	if plain || !isatty.IsTerminal(fileFd(out)) {
		fmt.Fprintln(out, label+"...")
		start := time.Now()
		err := fn()
		fmt.Fprintf(out, "%s in %s\n", label, formatDuration(time.Since(start)))
		return err
	}

	m := &spinnerModel{spin: spinner.New(spinner.WithSpinner(spinner.Dot)), label: label, fn: fn, start: time.Now()}
	p := tea.NewProgram(m, tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return fn()
	}
	result := finalModel.(*spinnerModel)
	return result.err
}

type runDoneMsg struct{ err error }

type spinnerModel struct {
	spin  spinner.Model
	label string
	fn    func() error
	err   error
	done  bool
	start time.Time
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.runCmd())
}

func (m *spinnerModel) runCmd() tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg{err: m.fn()}
	}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *spinnerModel) View() string {
	styles := DefaultStyles()
	if m.done {
		elapsed := formatDuration(time.Since(m.start))
		if m.err != nil {
			return styles.Error.Render(fmt.Sprintf("✗ %s (%s)", m.label, elapsed)) + "\n"
		}
		return styles.Success.Render(fmt.Sprintf("✓ %s (%s)", m.label, elapsed)) + "\n"
	}
	return fmt.Sprintf("%s %s\n", m.spin.View(), styles.Label.Render(m.label))
}

// fileFd extracts a file descriptor for tty detection when out is an
// *os.File; any other writer is treated as non-interactive.
func fileFd(out io.Writer) uintptr {
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

// formatDuration formats a duration for display, kept for commands that
// report elapsed time around a run (e.g. "completed in 1m4s").
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
