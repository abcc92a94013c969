package status

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/greg904/costau/internal/tui/styles"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// StatusMessage represents a status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Component implements a status bar that shows temporary messages
type Component struct {
	message     *StatusMessage
	width       int
	leftContent string

	// Timer for clearing messages
	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: 5 * time.Second, // Clear messages after 5 seconds
	}
}

// SetMessage sets a status message with the given type
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	c.message = &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now(),
	}

	// Return a command to clear the message after the timeout
	return tea.Tick(c.clearAfter, func(t time.Time) tea.Msg {
		return clearMessageMsg{timestamp: c.message.Timestamp}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowWarning shows a warning message
func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// SetLeftContent sets the left side content (debounce and precision info)
func (c *Component) SetLeftContent(content string) {
	c.leftContent = content
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMessageMsg:
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}

	return c, nil
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()

	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	left := []rune(c.leftContent)
	var right []rune

	if c.message != nil {
		right = []rune(c.formatMessage())
	}

	availableWidth := c.width - 2 // Account for padding

	// Truncate on rune boundaries; messages carry ✔ ⚠ ✘ prefixes and
	// expressions may contain multi-byte runes.
	if len(left)+len(right) > availableWidth {
		right = truncate(right, 40)

		remaining := availableWidth - len(right)
		if len(left) > remaining {
			left = truncate(left, remaining)
		}
	}

	content := string(left)
	if len(right) > 0 {
		// Right-align the status message
		spacesNeeded := availableWidth - len(left) - len(right)
		if spacesNeeded > 0 {
			content += fmt.Sprintf("%*s%s", spacesNeeded, "", string(right))
		} else {
			content += " " + string(right)
		}
	}

	return statusStyle.Render(content)
}

// truncate shortens s to at most max runes, ellipsized.
func truncate(s []rune, max int) []rune {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:0]
	}
	return append(s[:max-3:max-3], []rune("...")...)
}

// formatMessage formats the status message with appropriate styling
func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	switch c.message.Type {
	case Success:
		return "✔ " + c.message.Content
	case Warning:
		return "⚠ " + c.message.Content
	case Error:
		return "✘ " + c.message.Content
	default: // Info
		return c.message.Content
	}
}
