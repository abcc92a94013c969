package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greg904/costau/internal/config"
	"github.com/greg904/costau/internal/eval"
	"github.com/greg904/costau/internal/sched"
	"github.com/greg904/costau/internal/tui/events"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClearInputSupersedesPendingEvaluation(t *testing.T) {
	results := make(chan sched.Result, 4)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			return &eval.Outcome{Exact: text}, nil
		},
		func(res sched.Result) { results <- res },
		sched.WithDelay(40*time.Millisecond),
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	m := New(c, events.NewBroker(), nil, config.DefaultConfig())

	m.input.SetValue("1+2")
	m.onTextChanged("1+2")

	// Cancelling before the debounce fires must retract the pending text
	m.clearInput()
	assert.True(t, m.input.IsEmpty())

	select {
	case res := <-results:
		assert.Empty(t, res.Expression, "cancelled text must not be evaluated")
	case <-time.After(time.Second):
		t.Fatal("no result after clearing")
	}

	select {
	case res := <-results:
		t.Fatalf("unexpected extra result %q", res.Expression)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmptyResultClearsPane(t *testing.T) {
	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			return &eval.Outcome{Exact: text}, nil
		},
		func(sched.Result) {},
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	m := New(c, events.NewBroker(), nil, config.DefaultConfig())
	m.result.SetSize(40, 1)

	m.result.SetResult(sched.Result{
		Expression: "1+2",
		Outcome:    &eval.Outcome{Exact: "3", IsExact: true, Base: 10},
	})
	require.Contains(t, m.result.View(), "= 3")

	model, _ := m.handleEvent(events.Event{
		Type:    events.EvalResultEvent,
		Payload: events.EvalResultPayload{Result: sched.Result{}},
	})
	require.Same(t, m, model)
	assert.NotContains(t, m.result.View(), "= 3")
}
