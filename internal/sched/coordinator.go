package sched

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greg904/costau/internal/eval"
)

// DefaultDelay is the idle time after the last edit before an evaluation is
// requested. Tunable via config; not correctness-critical.
const DefaultDelay = 300 * time.Millisecond

// EvalFunc evaluates one expression. It is called synchronously on the
// worker goroutine and must not retain the text.
type EvalFunc func(text string) (*eval.Outcome, error)

// Result is what the worker delivers for one submission.
type Result struct {
	// ID is the submission's ID.
	ID uuid.UUID

	// Expression is the text that was evaluated.
	Expression string

	// Outcome is the evaluation outcome; nil when Err is set.
	Outcome *eval.Outcome

	// Err is the parse or evaluation error, if any.
	Err error

	// Duration is how long the evaluation took.
	Duration time.Duration
}

// Coordinator debounces text edits and drives the evaluation worker.
//
// Every edit restarts the debounce timer. When the timer fires, the latest
// text is submitted to the mailbox and a worker is spawned if none is
// running. The worker drains the mailbox, evaluating one submission at a
// time, and exits when it finds the mailbox empty.
//
// Used by: the TUI input component (OnTextChanged, Flush), config reload
// (SetDelay), main (Stop)
// Thread-safe: Yes
type Coordinator struct {
	box      *Mailbox
	evaluate EvalFunc
	onResult func(Result)
	logger   *slog.Logger

	mutex   sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	latest  string
	pending bool
	stopped bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay sets the initial debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger used for worker faults.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// New creates a coordinator. evaluate runs on the worker goroutine; onResult
// is called from the same goroutine and must hand off to the UI itself
// (typically by publishing an event).
func New(evaluate EvalFunc, onResult func(Result), opts ...Option) *Coordinator {
	c := &Coordinator{
		box:      NewMailbox(),
		evaluate: evaluate,
		onResult: onResult,
		logger:   slog.Default(),
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnTextChanged records the new text and restarts the debounce timer. Called
// on every edit, arbitrarily often. Empty text is submitted like any other,
// so the display can clear.
func (c *Coordinator) OnTextChanged(text string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.stopped {
		return
	}
	c.latest = text
	c.pending = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
}

// Flush submits the pending text immediately, as if the timer had fired.
// No-op when nothing is pending.
func (c *Coordinator) Flush() {
	c.fire()
}

// SetDelay changes the debounce delay for subsequent edits. A pending timer
// keeps its original delay.
func (c *Coordinator) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delay = d
}

// Delay returns the current debounce delay.
func (c *Coordinator) Delay() time.Duration {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.delay
}

// Stop cancels the pending timer and prevents new submissions. In-flight
// evaluations are not interrupted; process shutdown only.
func (c *Coordinator) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.stopped = true
	c.pending = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire consumes the pending text and submits it. Runs on the timer goroutine
// and on callers of Flush; the pending flag makes the two paths race-free.
func (c *Coordinator) fire() {
	c.mutex.Lock()
	if c.stopped || !c.pending {
		c.mutex.Unlock()
		return
	}
	c.pending = false
	text := c.latest
	c.mutex.Unlock()

	item := Item{ID: uuid.New(), Text: text, At: time.Now()}
	if c.box.Submit(item) {
		go c.drain()
	}
}

// drain is the worker loop: take, evaluate, publish, repeat; exit when the
// mailbox is empty. A submission arriving during an evaluation is picked up
// on the next iteration without waiting for another debounce.
func (c *Coordinator) drain() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("evaluation worker crashed", "panic", r)
			c.box.Abandon()
		}
	}()

	for {
		item, ok := c.box.TryTake()
		if !ok {
			return
		}

		// Cleared input produces an empty result so the display blanks
		// without a trip through the evaluator.
		if item.Text == "" {
			if c.box.Has() {
				continue
			}
			c.onResult(Result{ID: item.ID})
			continue
		}

		start := time.Now()
		outcome, err := c.evaluate(item.Text)
		duration := time.Since(start)

		// A newer submission arrived while we were evaluating; publishing
		// this result would paint a stale value for an instant.
		if c.box.Has() {
			continue
		}

		c.onResult(Result{
			ID:         item.ID,
			Expression: item.Text,
			Outcome:    outcome,
			Err:        err,
			Duration:   duration,
		})
	}
}
