// Package histview shows previously evaluated expressions in a scrollable pane.
package histview

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/greg904/costau/internal/history"
	"github.com/greg904/costau/internal/tui/components/core"
	"github.com/greg904/costau/internal/tui/styles"
)

// Model wraps a viewport over the stored history, newest entry on top.
type Model struct {
	viewport viewport.Model
	entries  []history.Entry
	width    int
	height   int
	ready    bool
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

// New creates a new history view
func New() *Model {
	return &Model{}
}

// Init implements the Component interface
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetEntries replaces the shown history
func (m *Model) SetEntries(entries []history.Entry) {
	m.entries = entries
	if m.ready {
		m.viewport.SetContent(m.renderEntries())
		m.viewport.GotoTop()
	}
}

// Entries returns the currently shown history
func (m *Model) Entries() []history.Entry {
	return m.entries
}

// SetSize implements the Sizeable interface
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	m.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(height),
	)
	m.viewport.MouseWheelEnabled = true
	m.ready = true
	m.viewport.SetContent(m.renderEntries())
	return nil
}

// View implements the Component interface
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) renderEntries() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	if len(m.entries) == 0 {
		return s.Subtle.Render("no history yet")
	}

	var b strings.Builder
	exprStyle := s.Text
	timeStyle := s.Subtle

	for i, entry := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(timeStyle.Render(entry.CreatedAt.Format("15:04:05")))
		b.WriteString("  ")
		b.WriteString(exprStyle.Render(entry.Expression))

		if entry.Error != "" {
			b.WriteString("  ")
			b.WriteString(s.Error.Render("error: " + entry.Error))
			b.WriteString("\n")
			continue
		}

		b.WriteString("  ")
		b.WriteString(s.Exact.Render("= " + entry.Exact))
		if entry.Approx != "" && entry.Approx != entry.Exact {
			b.WriteString("  ")
			b.WriteString(s.Approx.Render("≈ " + entry.Approx))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(m.width).Render(b.String())
}
