package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// overrideKey is the single key recognized in the override file.
const overrideKey = "use-mocks"

// MockSwitch decides whether the service should skip the remote API.
// The JSON override file ({"use-mocks": true|false}) wins over the
// environment default whenever it exists and carries the key.
type MockSwitch struct {
	fallback bool
	path     string
	v        *viper.Viper
	logger   *zap.Logger
	watcher  *fsnotify.Watcher

	// override holds nil when the file is absent or unusable
	override atomic.Pointer[bool]
}

// NewMockSwitch creates the switch and reads the override file once.
func NewMockSwitch(cfg RemoteConfig, logger *zap.Logger) *MockSwitch {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &MockSwitch{
		fallback: cfg.UseMocks,
		path:     cfg.OverrideFile,
		logger:   logger.Named("mock-switch"),
	}
	if m.path != "" {
		m.v = viper.New()
		m.v.SetConfigFile(m.path)
		m.v.SetConfigType("json")
		if err := m.Reload(); err != nil {
			m.logger.Warn("Ignoring mock override file", zap.String("path", m.path), zap.Error(err))
		}
	}
	return m
}

// UseMocks implements outbound.ModeSource
func (m *MockSwitch) UseMocks() bool {
	if v := m.override.Load(); v != nil {
		return *v
	}
	return m.fallback
}

// Reload re-reads the override file. A missing file clears the override.
func (m *MockSwitch) Reload() error {
	if m.v == nil {
		return nil
	}

	if err := m.v.ReadInConfig(); err != nil {
		m.override.Store(nil)
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read override file: %w", err)
	}
	m.apply()
	return nil
}

// Watch keeps the override in sync with the file on disk. The parent
// directory is watched so that removing and recreating the file are both
// seen; every change to the file goes through Reload.
func (m *MockSwitch) Watch() error {
	if m.v == nil {
		return nil
	}

	target, err := filepath.Abs(m.path)
	if err != nil {
		return fmt.Errorf("failed to resolve override file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	m.watcher = watcher
	go m.watchLoop(watcher, target)
	return nil
}

// Close stops watching the override file.
func (m *MockSwitch) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *MockSwitch) watchLoop(watcher *fsnotify.Watcher, target string) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || event.Op&relevant == 0 {
				continue
			}
			if err := m.Reload(); err != nil {
				m.logger.Warn("Ignoring mock override file", zap.String("path", m.path), zap.Error(err))
			}
			m.logger.Info("Mock override changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()),
				zap.Bool("use_mocks", m.UseMocks()),
			)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("Mock override watcher error", zap.Error(err))
		}
	}
}

func (m *MockSwitch) apply() {
	if !m.v.IsSet(overrideKey) {
		m.override.Store(nil)
		return
	}
	value := m.v.GetBool(overrideKey)
	m.override.Store(&value)
}
