// Package tui wires the calculator interface together: an input line on
// top, the live result below it, and the scrollable history underneath.
// All state changes flow through the event broker so the bubbletea loop
// stays the only goroutine touching UI state.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/greg904/costau/internal/config"
	"github.com/greg904/costau/internal/history"
	"github.com/greg904/costau/internal/sched"
	"github.com/greg904/costau/internal/tui/components/histview"
	"github.com/greg904/costau/internal/tui/components/input"
	"github.com/greg904/costau/internal/tui/components/result"
	"github.com/greg904/costau/internal/tui/components/status"
	"github.com/greg904/costau/internal/tui/events"
	"github.com/greg904/costau/internal/tui/styles"
)

// Model is the root bubbletea model
type Model struct {
	coordinator *sched.Coordinator
	eventBroker *events.Broker
	eventSub    <-chan events.Event
	store       *history.Store // nil when history is disabled

	input     *input.Model
	result    *result.Model
	histview  *histview.Model
	statusBar *status.Component

	width  int
	height int

	debounceMs    int
	precisionBits uint

	showHelp bool
}

// New creates the root model. The store may be nil when history is
// disabled in the config.
func New(coordinator *sched.Coordinator, eventBroker *events.Broker, store *history.Store, cfg *config.Config) *Model {
	m := &Model{
		coordinator:   coordinator,
		eventBroker:   eventBroker,
		store:         store,
		input:         input.New(),
		result:        result.New(),
		histview:      histview.New(),
		statusBar:     status.New(),
		debounceMs:    cfg.DebounceMs,
		precisionBits: cfg.PrecisionBits,
	}
	m.eventSub = eventBroker.Subscribe()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, m.input.Init())
	cmds = append(cmds, m.result.Init())
	cmds = append(cmds, m.histview.Init())
	cmds = append(cmds, m.statusBar.Init())

	cmds = append(cmds, m.input.Focus())

	// Start event processing
	cmds = append(cmds, m.listenForEvents())

	m.statusBar.SetLeftContent(m.statusLeft())
	m.loadHistory()

	m.eventBroker.PublishAsync(events.Event{
		Type: events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{
			Message: "Type an expression, ? for help",
			Type:    "info",
		},
	})

	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle events that come as messages
	if event, ok := msg.(events.Event); ok {
		model, cmd := m.handleEvent(event)
		cmds = append(cmds, cmd, model.(*Model).listenForEvents())
		return model, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const statusHeight = 1
		const inputHeight = 1
		const resultHeight = 1
		// Bordered panes take two extra rows each
		histHeight := m.height - statusHeight - (inputHeight + 2) - (resultHeight + 2) - 2

		cmds = append(cmds, m.input.SetSize(m.width-2, inputHeight))
		cmds = append(cmds, m.result.SetSize(m.width-2, resultHeight))
		cmds = append(cmds, m.histview.SetSize(m.width-2, histHeight))
		cmds = append(cmds, m.statusBar.SetSize(m.width, statusHeight))

		return m, tea.Batch(cmds...)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.coordinator.Stop()
			return m, tea.Quit
		case "ctrl+l":
			return m, m.clearHistory()
		case "?":
			if m.input.IsEmpty() {
				m.showHelp = !m.showHelp
				return m, nil
			}
			// Let a "?" inside an expression go to the input
		case "enter":
			// Skip the rest of the debounce window
			m.coordinator.Flush()
			return m, nil
		case "esc":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			if !m.input.IsEmpty() {
				m.clearInput()
				return m, nil
			}
			return m, nil
		case "up", "down", "pgup", "pgdown":
			// Scroll the history pane
			var histModel tea.Model
			histModel, cmd := m.histview.Update(msg)
			if hm, ok := histModel.(*histview.Model); ok {
				m.histview = hm
			}
			return m, cmd
		}

		if m.showHelp {
			return m, nil
		}

		// Everything else is typing
		before := m.input.Value()
		inputModel, cmd := m.input.Update(msg)
		if im, ok := inputModel.(*input.Model); ok {
			m.input = im
		}
		cmds = append(cmds, cmd)
		if after := m.input.Value(); after != before {
			cmds = append(cmds, m.onTextChanged(after))
		}
		return m, tea.Batch(cmds...)
	}

	// Remaining messages fan out to every component
	var cmd tea.Cmd

	var resultModel tea.Model
	resultModel, cmd = m.result.Update(msg)
	if rm, ok := resultModel.(*result.Model); ok {
		m.result = rm
	}
	cmds = append(cmds, cmd)

	var histModel tea.Model
	histModel, cmd = m.histview.Update(msg)
	if hm, ok := histModel.(*histview.Model); ok {
		m.histview = hm
	}
	cmds = append(cmds, cmd)

	var statusModel tea.Model
	statusModel, cmd = m.statusBar.Update(msg)
	if sbm, ok := statusModel.(*status.Component); ok {
		m.statusBar = sbm
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// onTextChanged feeds the edited expression into the debounce window.
func (m *Model) onTextChanged(text string) tea.Cmd {
	m.coordinator.OnTextChanged(text)
	if text == "" {
		// Blank the pane right away rather than after the debounce
		m.result.Clear()
		return nil
	}
	m.eventBroker.PublishAsync(events.Event{
		Type:    events.EvalStartedEvent,
		Payload: events.EvalStartedPayload{Expression: text},
	})
	return nil
}

// clearInput wipes the entry line and supersedes any evaluation still
// pending for the cancelled text, so it never paints or reaches history.
func (m *Model) clearInput() {
	m.input.Reset()
	m.result.Clear()
	m.coordinator.OnTextChanged("")
}

// handleEvent routes broker events into component state
func (m *Model) handleEvent(event events.Event) (tea.Model, tea.Cmd) {
	switch event.Type {
	case events.EvalStartedEvent:
		if payload, ok := event.Payload.(events.EvalStartedPayload); ok {
			return m, m.result.SetEvaluating(payload.Expression)
		}

	case events.EvalResultEvent:
		if payload, ok := event.Payload.(events.EvalResultPayload); ok {
			// A result for text the user has since deleted is stale
			if payload.Result.Expression == "" || m.input.IsEmpty() {
				m.result.Clear()
				return m, nil
			}
			m.result.SetResult(payload.Result)
		}

	case events.HistoryUpdatedEvent:
		if payload, ok := event.Payload.(events.HistoryUpdatedPayload); ok {
			m.histview.SetEntries(payload.Entries)
		}

	case events.HistoryClearedEvent:
		m.histview.SetEntries(nil)
		return m, m.statusBar.ShowInfo("history cleared")

	case events.ConfigReloadedEvent:
		if payload, ok := event.Payload.(events.ConfigReloadedPayload); ok {
			m.debounceMs = payload.DebounceMs
			m.precisionBits = payload.PrecisionBits
			if payload.Theme != "" {
				if err := styles.DefaultManager().SetTheme(payload.Theme); err == nil {
					// Force panes to pick up the new palette
					m.histview.SetEntries(m.histview.Entries())
				}
			}
			m.statusBar.SetLeftContent(m.statusLeft())
			return m, m.statusBar.ShowSuccess("config reloaded")
		}

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch payload.Type {
			case "error":
				return m, m.statusBar.ShowError(payload.Message)
			case "warning":
				return m, m.statusBar.ShowWarning(payload.Message)
			case "success":
				return m, m.statusBar.ShowSuccess(payload.Message)
			default:
				return m, m.statusBar.ShowInfo(payload.Message)
			}
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.helpView()
	}

	theme := styles.CurrentTheme()

	inputStyle := lipgloss.NewStyle().
		Width(m.width - 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocus)
	inputView := inputStyle.Render(m.input.View())

	resultStyle := lipgloss.NewStyle().
		Width(m.width - 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	resultView := resultStyle.Render(m.result.View())

	histView := lipgloss.NewStyle().
		Width(m.width).
		Render(m.histview.View())

	statusView := m.statusBar.View()

	return lipgloss.JoinVertical(lipgloss.Left,
		inputView,
		resultView,
		histView,
		statusView,
	)
}

func (m *Model) statusLeft() string {
	return fmt.Sprintf("costau  %dms  %d-bit  %s",
		m.debounceMs, m.precisionBits, styles.CurrentTheme().Name)
}

// loadHistory fills the history pane from the store on startup
func (m *Model) loadHistory() {
	if m.store == nil {
		return
	}
	entries, err := m.store.Recent(100)
	if err != nil {
		return
	}
	m.histview.SetEntries(entries)
}

func (m *Model) clearHistory() tea.Cmd {
	if m.store == nil {
		return m.statusBar.ShowWarning("history is disabled")
	}
	if err := m.store.Clear(); err != nil {
		return m.statusBar.ShowError("clear failed: " + err.Error())
	}
	m.eventBroker.PublishAsync(events.Event{Type: events.HistoryClearedEvent})
	return nil
}

// listenForEvents creates a command that waits for events
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event := <-m.eventSub
		return event
	}
}
