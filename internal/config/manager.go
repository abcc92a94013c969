package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of fsnotify events an editor save
// produces into one reload.
const reloadDebounce = 100 * time.Millisecond

// Manager holds the current config and optionally watches the file for
// changes. On a valid edit the config is swapped and the change callbacks
// run; invalid edits are reported on the error channel and the last good
// config stays active.
//
// Thread-safe: Yes
type Manager struct {
	path string

	mu       sync.RWMutex
	config   *Config
	onChange []func(*Config)

	watcher *fsnotify.Watcher
	done    chan struct{}
	errChan chan error
}

// NewManager loads (or creates) the config at path. Pass "" for the default
// location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, _, err := LoadOrCreate(path)
	if err != nil {
		return nil, err
	}

	return &Manager{
		path:    path,
		config:  cfg,
		done:    make(chan struct{}),
		errChan: make(chan error, 1),
	}, nil
}

// Config returns the current configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// OnChange registers a callback invoked with the new config after each
// successful reload. Register callbacks before calling Watch.
func (m *Manager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, cb)
}

// Errors returns the channel reload failures are reported on.
func (m *Manager) Errors() <-chan error {
	return m.errChan
}

// Watch starts observing the config file for edits.
func (m *Manager) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	m.watcher = watcher
	go m.watchLoop()
	return nil
}

// Close stops the watcher.
func (m *Manager) Close() error {
	close(m.done)
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

func (m *Manager) watchLoop() {
	var debounce *time.Timer

	for {
		select {
		case <-m.done:
			return

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(m.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, m.reload)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.reportError(err)
		}
	}
}

// reload swaps in the config at path if it parses and validates.
func (m *Manager) reload() {
	cfg, err := load(m.path)
	if err != nil {
		m.reportError(fmt.Errorf("reload config: %w", err))
		return
	}

	m.mu.Lock()
	m.config = cfg
	callbacks := m.onChange
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (m *Manager) reportError(err error) {
	select {
	case m.errChan <- err:
	default:
	}
}
