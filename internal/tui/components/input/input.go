// Package input implements the expression entry line.
package input

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/greg904/costau/internal/tui/components/core"
	"github.com/greg904/costau/internal/tui/styles"
)

// Model implements the text input component for expressions
type Model struct {
	value       []rune
	placeholder string
	cursorPos   int
	width       int
	height      int
	focused     bool
	enabled     bool
}

// Ensure Model implements required interfaces
var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)
var _ core.Focusable = (*Model)(nil)

// New creates a new input component
func New() *Model {
	return &Model{
		placeholder: "Type an expression, e.g. sin(pi/3) + 2^10",
		cursorPos:   0,
		focused:     true,
		enabled:     true,
	}
}

// Init initializes the input component
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the input component
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.enabled || !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		keyStr := msg.String()

		// Handle space explicitly - Bubble Tea v2 reports it as "space" not " "
		if keyStr == "space" {
			m.insert(' ')
			return m, nil
		}

		switch keyStr {
		case "backspace":
			if m.cursorPos > 0 {
				m.value = append(m.value[:m.cursorPos-1], m.value[m.cursorPos:]...)
				m.cursorPos--
			}
		case "delete":
			if m.cursorPos < len(m.value) {
				m.value = append(m.value[:m.cursorPos], m.value[m.cursorPos+1:]...)
			}
		case "left":
			if m.cursorPos > 0 {
				m.cursorPos--
			}
		case "right":
			if m.cursorPos < len(m.value) {
				m.cursorPos++
			}
		case "home", "ctrl+a":
			m.cursorPos = 0
		case "end", "ctrl+e":
			m.cursorPos = len(m.value)
		case "ctrl+k":
			// Kill to end of line
			m.value = m.value[:m.cursorPos]
		case "ctrl+u":
			// Kill to beginning of line
			m.value = m.value[m.cursorPos:]
			m.cursorPos = 0
		default:
			// Regular character input. Expressions may contain non-ASCII
			// operators like × ÷ π, so anything printable goes in.
			runes := []rune(keyStr)
			if len(runes) == 1 && unicode.IsPrint(runes[0]) {
				m.insert(runes[0])
			}
		}
	}

	return m, nil
}

func (m *Model) insert(r rune) {
	m.value = append(m.value[:m.cursorPos], append([]rune{r}, m.value[m.cursorPos:]...)...)
	m.cursorPos++
}

// SetSize sets the dimensions of the input component
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return nil
}

// View renders the input component
func (m *Model) View() string {
	theme := styles.CurrentTheme()

	inputStyle := lipgloss.NewStyle().
		Width(m.width - 2).
		Padding(0, 1)

	if len(m.value) == 0 && m.placeholder != "" {
		placeholderStyle := inputStyle.Foreground(theme.FgSubtle)
		return placeholderStyle.Render(m.placeholder)
	}

	if m.focused && m.enabled {
		before := string(m.value[:m.cursorPos])
		after := ""
		cursor := " "

		if m.cursorPos < len(m.value) {
			cursor = string(m.value[m.cursorPos])
			after = string(m.value[m.cursorPos+1:])
		}

		cursorStyle := lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.FgInverted)

		return inputStyle.Render(before + cursorStyle.Render(cursor) + after)
	}

	return inputStyle.Render(string(m.value))
}

// Focus focuses the input component
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return nil
}

// Blur removes focus from the input component
func (m *Model) Blur() tea.Cmd {
	m.focused = false
	return nil
}

// Focused returns whether the input component is focused
func (m *Model) Focused() bool {
	return m.focused
}

// Value returns the current input value
func (m *Model) Value() string {
	return string(m.value)
}

// SetValue sets the input value
func (m *Model) SetValue(value string) {
	m.value = []rune(value)
	m.cursorPos = len(m.value)
}

// Reset clears the input
func (m *Model) Reset() {
	m.value = nil
	m.cursorPos = 0
}

// SetEnabled enables or disables the input
func (m *Model) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.focused = false
	}
}

// IsEmpty returns true if the input is empty
func (m *Model) IsEmpty() bool {
	return strings.TrimSpace(string(m.value)) == ""
}

// SetPlaceholder sets the placeholder text
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}
