// Package main is the entry point for the costau calculator.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/greg904/costau/internal/config"
	"github.com/greg904/costau/internal/eval"
	"github.com/greg904/costau/internal/history"
	"github.com/greg904/costau/internal/logging"
	"github.com/greg904/costau/internal/sched"
	"github.com/greg904/costau/internal/tui"
	"github.com/greg904/costau/internal/tui/events"
	"github.com/greg904/costau/internal/tui/styles"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "costau: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgMgr, err := config.NewManager(os.Getenv("COSTAU_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer cfgMgr.Close()
	cfg := cfgMgr.Config()

	logger, closeLogs, err := logging.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLogs()

	if err := styles.DefaultManager().SetTheme(cfg.Theme); err != nil {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme)
	}

	var store *history.Store
	if cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			path, err = config.DefaultHistoryPath()
			if err != nil {
				return fmt.Errorf("resolve history path: %w", err)
			}
		}
		store, err = history.Open(path)
		if err != nil {
			// The calculator still works without persistence
			logger.Warn("history disabled, store unavailable", "path", path, "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	broker := events.NewBroker()

	evaluate := func(text string) (*eval.Outcome, error) {
		return eval.EvaluateWithPrec(text, cfgMgr.Config().PrecisionBits)
	}

	onResult := func(res sched.Result) {
		broker.Publish(events.Event{
			Type:    events.EvalResultEvent,
			Payload: events.EvalResultPayload{Result: res},
		})

		if store == nil || res.Expression == "" {
			return
		}
		entry := history.Entry{
			ID:         res.ID,
			Expression: res.Expression,
			CreatedAt:  time.Now(),
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Exact = res.Outcome.Exact
			entry.Approx = res.Outcome.Approx
		}
		if err := store.Append(entry); err != nil {
			logger.Warn("history append failed", "error", err)
			return
		}
		if entries, err := store.Recent(100); err == nil {
			broker.Publish(events.Event{
				Type:    events.HistoryUpdatedEvent,
				Payload: events.HistoryUpdatedPayload{Entries: entries},
			})
		}
	}

	coordinator := sched.New(evaluate, onResult,
		sched.WithDelay(time.Duration(cfg.DebounceMs)*time.Millisecond),
		sched.WithLogger(logger),
	)
	defer coordinator.Stop()

	cfgMgr.OnChange(func(c *config.Config) {
		coordinator.SetDelay(time.Duration(c.DebounceMs) * time.Millisecond)
		broker.Publish(events.Event{
			Type: events.ConfigReloadedEvent,
			Payload: events.ConfigReloadedPayload{
				DebounceMs:    c.DebounceMs,
				PrecisionBits: c.PrecisionBits,
				Theme:         c.Theme,
			},
		})
	})
	go func() {
		for err := range cfgMgr.Errors() {
			logger.Warn("config reload failed", "error", err)
			broker.Publish(events.Event{
				Type: events.StatusMessageEvent,
				Payload: events.StatusMessagePayload{
					Message: "config reload failed, keeping previous settings",
					Type:    "warning",
				},
			})
		}
	}()
	if err := cfgMgr.Watch(); err != nil {
		logger.Warn("config watching unavailable", "error", err)
	}

	logger.Info("starting",
		"config", cfgMgr.Path(),
		"debounce_ms", cfg.DebounceMs,
		"precision_bits", cfg.PrecisionBits,
	)

	model := tui.New(coordinator, broker, store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
