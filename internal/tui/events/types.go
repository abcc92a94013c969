package events

import (
	"github.com/greg904/costau/internal/history"
	"github.com/greg904/costau/internal/sched"
)

// EventType identifies the type of event
type EventType string

const (
	// Evaluation events
	EvalStartedEvent EventType = "eval.started"
	EvalResultEvent  EventType = "eval.result"

	// History events
	HistoryUpdatedEvent EventType = "history.updated"
	HistoryClearedEvent EventType = "history.cleared"

	// Config events
	ConfigReloadedEvent EventType = "config.reloaded"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

// EvalStartedPayload announces that an expression was handed to the worker.
type EvalStartedPayload struct {
	Expression string
}

// EvalResultPayload carries a finished evaluation.
type EvalResultPayload struct {
	Result sched.Result
}

// HistoryUpdatedPayload carries the refreshed recent entries.
type HistoryUpdatedPayload struct {
	Entries []history.Entry
}

// ConfigReloadedPayload announces applied config changes.
type ConfigReloadedPayload struct {
	DebounceMs    int
	PrecisionBits uint
	Theme         string
}

// StatusMessagePayload is a transient message for the status bar.
type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
