// Package sched schedules background evaluation of the expression the user is
// typing.
//
// # Overview
//
// Keystrokes arrive much faster than evaluations should run. This package
// turns a stream of text edits into at most one evaluation per pause:
//   - Debouncing: an evaluation is requested only after the input has been
//     idle for a configurable delay.
//   - Latest-wins: a newer expression always replaces an older one that has
//     not started evaluating; intermediate states are never evaluated.
//   - Single-flight: at most one evaluation runs at any instant, on a worker
//     goroutine that exists only while there is work.
//
// # Architecture
//
//   - Mailbox: single-slot holder for the most recent submission
//   - Coordinator: owns the debounce timer and the worker lifecycle
//   - Result: what the worker delivers back, via a callback
//
// The UI calls Coordinator.OnTextChanged on every edit and receives results
// on the callback; it never touches the mailbox or worker directly.
package sched
