// Package result renders the outcome of the most recent evaluation.
package result

import (
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/greg904/costau/internal/eval"
	"github.com/greg904/costau/internal/sched"
	"github.com/greg904/costau/internal/tui/components/core"
	"github.com/greg904/costau/internal/tui/styles"
)

// Model shows the current result, an error, or a spinner while a
// calculation is in flight.
type Model struct {
	expression string
	outcome    *eval.Outcome
	err        error
	evaluating bool
	spinner    spinner.Model
	width      int
	height     int
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

// New creates a new result component
func New() *Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &Model{spinner: s}
}

// Init implements the Component interface
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.evaluating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// SetEvaluating marks an expression as in flight and starts the spinner
func (m *Model) SetEvaluating(expression string) tea.Cmd {
	m.expression = expression
	m.evaluating = true
	return m.spinner.Tick
}

// SetResult stores a finished evaluation
func (m *Model) SetResult(res sched.Result) {
	m.expression = res.Expression
	m.outcome = res.Outcome
	m.err = res.Err
	m.evaluating = false
}

// Clear empties the result pane
func (m *Model) Clear() {
	m.expression = ""
	m.outcome = nil
	m.err = nil
	m.evaluating = false
}

// SetSize implements the Sizeable interface
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return nil
}

// View implements the Component interface
func (m *Model) View() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	pane := lipgloss.NewStyle().
		Width(m.width - 2).
		Padding(0, 1)

	if m.evaluating {
		return pane.Render(m.spinner.View() + s.Muted.Render(" calculating"))
	}

	if m.err != nil {
		return pane.Render(s.Error.Render("error: " + m.err.Error()))
	}

	if m.outcome == nil {
		return pane.Render(s.Subtle.Render("results appear here"))
	}

	line := s.Exact.Render("= " + m.outcome.Exact)
	if m.outcome.Approx != "" && m.outcome.Approx != m.outcome.Exact {
		line += "  " + s.Approx.Render("≈ "+m.outcome.Approx)
	}
	if m.outcome.Base != 10 {
		line += "  " + s.Badge.Render(baseName(m.outcome.Base))
	}
	return pane.Render(line)
}

func baseName(base int) string {
	switch base {
	case 2:
		return "bin"
	case 16:
		return "hex"
	default:
		return "dec"
	}
}
