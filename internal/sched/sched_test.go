package sched_test

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greg904/costau/internal/eval"
	"github.com/greg904/costau/internal/sched"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMailboxLatestWins(t *testing.T) {
	m := sched.NewMailbox()

	require.True(t, m.Submit(sched.Item{Text: "1+"}), "first submission should spawn")
	require.False(t, m.Submit(sched.Item{Text: "1+2"}), "worker already claimed")

	item, ok := m.TryTake()
	require.True(t, ok)
	assert.Equal(t, "1+2", item.Text, "newer submission replaces the older one")

	_, ok = m.TryTake()
	require.False(t, ok, "mailbox drained")

	require.True(t, m.Submit(sched.Item{Text: "3"}), "drained mailbox spawns again")
}

func TestMailboxAbandon(t *testing.T) {
	m := sched.NewMailbox()

	require.True(t, m.Submit(sched.Item{Text: "x"}))
	m.Abandon()
	require.True(t, m.Submit(sched.Item{Text: "y"}), "abandoned worker slot is reclaimable")

	item, ok := m.TryTake()
	require.True(t, ok)
	assert.Equal(t, "y", item.Text)
}

func TestDebounceBurstEvaluatesOnce(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	results := make(chan sched.Result, 8)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			mu.Lock()
			seen = append(seen, text)
			mu.Unlock()
			return &eval.Outcome{Exact: text}, nil
		},
		func(r sched.Result) { results <- r },
		sched.WithDelay(100*time.Millisecond),
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	c.OnTextChanged("1")
	c.OnTextChanged("1+")
	c.OnTextChanged("1+2")

	select {
	case r := <-results:
		assert.Equal(t, "1+2", r.Expression)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	// Give a second spurious evaluation time to happen.
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"1+2"}, seen, "exactly one evaluation with the last text")
}

func TestSingleFlight(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	results := make(chan sched.Result, 64)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			n := inFlight.Add(1)
			for {
				old := maxInFlight.Load()
				if n <= old || maxInFlight.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return &eval.Outcome{Exact: text}, nil
		},
		func(r sched.Result) { results <- r },
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	for i := 0; i < 20; i++ {
		c.OnTextChanged("1+1")
		c.Flush()
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-results:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	assert.Equal(t, int32(1), maxInFlight.Load(), "never more than one concurrent evaluation")
}

func TestSubmissionDuringEvaluationSupersedes(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})
	results := make(chan sched.Result, 2)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			started <- text
			if text == "slow" {
				<-release
			}
			return &eval.Outcome{Exact: text}, nil
		},
		func(r sched.Result) { results <- r },
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	c.OnTextChanged("slow")
	c.Flush()
	require.Equal(t, "slow", <-started)

	// Supersede while the first evaluation is still running.
	c.OnTextChanged("fresh")
	c.Flush()
	close(release)

	require.Equal(t, "fresh", <-started, "the worker picks up the newer submission without a new debounce")

	r := <-results
	assert.Equal(t, "fresh", r.Expression, "the superseded result is never published")

	select {
	case r := <-results:
		t.Fatalf("unexpected extra result %q", r.Expression)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWorkerPanicSelfHeals(t *testing.T) {
	results := make(chan sched.Result, 2)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			if text == "boom" {
				panic("evaluator bug")
			}
			return &eval.Outcome{Exact: text}, nil
		},
		func(r sched.Result) { results <- r },
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	c.OnTextChanged("boom")
	c.Flush()

	// The worker died; the next submission must spawn a fresh one.
	require.Eventually(t, func() bool {
		c.OnTextChanged("1")
		c.Flush()
		select {
		case r := <-results:
			return r.Expression == "1"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "no result after worker panic")
}

func TestDeterministicOutcomes(t *testing.T) {
	results := make(chan sched.Result, 2)

	c := sched.New(
		func(text string) (*eval.Outcome, error) { return eval.Evaluate(text) },
		func(r sched.Result) { results <- r },
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	for i := 0; i < 2; i++ {
		c.OnTextChanged("2^10")
		c.Flush()
		select {
		case r := <-results:
			require.NoError(t, r.Err)
			assert.Equal(t, "1024", r.Outcome.Exact)
		case <-time.After(2 * time.Second):
			t.Fatal("no result delivered")
		}
	}
}

func TestEmptySubmissionSkipsEvaluator(t *testing.T) {
	var calls atomic.Int32
	results := make(chan sched.Result, 1)

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			calls.Add(1)
			return &eval.Outcome{Exact: text}, nil
		},
		func(res sched.Result) { results <- res },
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	c.OnTextChanged("")
	c.Flush()

	select {
	case res := <-results:
		assert.Empty(t, res.Expression)
		assert.Nil(t, res.Outcome)
		assert.NoError(t, res.Err)
	case <-time.After(time.Second):
		t.Fatal("no result for cleared input")
	}
	assert.Equal(t, int32(0), calls.Load(), "evaluator must not see empty text")
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	var calls atomic.Int32

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			calls.Add(1)
			return &eval.Outcome{Exact: text}, nil
		},
		func(sched.Result) {},
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	c.Flush()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestStopPreventsSubmissions(t *testing.T) {
	var calls atomic.Int32

	c := sched.New(
		func(text string) (*eval.Outcome, error) {
			calls.Add(1)
			return &eval.Outcome{Exact: text}, nil
		},
		func(sched.Result) {},
		sched.WithDelay(10*time.Millisecond),
		sched.WithLogger(quietLogger()),
	)

	c.OnTextChanged("1")
	c.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "stopped coordinator never evaluates")

	c.OnTextChanged("2")
	c.Flush()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSetDelay(t *testing.T) {
	c := sched.New(
		func(text string) (*eval.Outcome, error) { return &eval.Outcome{Exact: text}, nil },
		func(sched.Result) {},
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	assert.Equal(t, sched.DefaultDelay, c.Delay())
	c.SetDelay(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, c.Delay())
	c.SetDelay(0)
	assert.Equal(t, 50*time.Millisecond, c.Delay(), "non-positive delays are ignored")
}

// End-to-end scenarios through the real evaluator.
func TestScenarios(t *testing.T) {
	results := make(chan sched.Result, 4)

	c := sched.New(
		func(text string) (*eval.Outcome, error) { return eval.Evaluate(text) },
		func(r sched.Result) { results <- r },
		sched.WithDelay(20*time.Millisecond),
		sched.WithLogger(quietLogger()),
	)
	defer c.Stop()

	wait := func() sched.Result {
		t.Helper()
		select {
		case r := <-results:
			return r
		case <-time.After(2 * time.Second):
			t.Fatal("no result delivered")
			return sched.Result{}
		}
	}

	// A single keystroke evaluates after the idle delay.
	c.OnTextChanged("1")
	r := wait()
	require.NoError(t, r.Err)
	assert.Equal(t, "1", r.Expression)
	assert.Equal(t, "1", r.Outcome.Exact)

	// A burst within the delay evaluates only its final text.
	c.OnTextChanged("1+")
	c.OnTextChanged("1+2")
	r = wait()
	require.NoError(t, r.Err)
	assert.Equal(t, "1+2", r.Expression)
	assert.Equal(t, "3", r.Outcome.Exact)

	// Division by zero is delivered as an evaluation error, not a crash.
	c.OnTextChanged("1/0")
	r = wait()
	require.Error(t, r.Err)
	var eerr eval.EvalError
	require.ErrorAs(t, r.Err, &eerr)
	assert.Equal(t, eval.DivisionByZeroError{}, eerr)
}
