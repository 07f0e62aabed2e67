package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/backupfleet/backupfleet/pkg/config"
)

// ConfigManager owns the agent's config file. All mutations go through
// it and rewrite the file wholesale.
type ConfigManager struct {
	path string
	log  *logrus.Logger

	mu  sync.RWMutex
	cfg *Config
}

func NewConfigManager(path string, log *logrus.Logger) *ConfigManager {
	return &ConfigManager{path: path, log: log}
}

// Load reads the config file, creating it with defaults when it does
// not exist. A corrupt file puts the agent on in-memory defaults but
// is left untouched on disk, so a persisted identity survives a bad
// edit.
func (m *ConfigManager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := DefaultConfig()

	err := config.LoadAndValidate(m.path, cfg)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		m.log.WithField("path", m.path).Info("Config file not found, writing defaults")

		if err := m.writeLocked(cfg); err != nil {
			return err
		}
	default:
		m.log.WithError(err).Warn("Config file unreadable, running on defaults")

		cfg = DefaultConfig()
	}

	m.cfg = cfg

	return nil
}

// Get returns a copy of the current configuration.
func (m *ConfigManager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return *m.cfg
}

// Path returns the location of the config file.
func (m *ConfigManager) Path() string {
	return m.path
}

// SetAgentID stores the server-assigned identity and persists the
// whole config file.
func (m *ConfigManager) SetAgentID(agentID string) error {
	return m.Update(func(cfg *Config) {
		cfg.AgentID = agentID
	})
}

// Update applies fn to the config under the lock and persists the
// result.
func (m *ConfigManager) Update(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(m.cfg)

	return m.writeLocked(m.cfg)
}

func (m *ConfigManager) writeLocked(cfg *Config) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	return config.WriteFile(m.path, cfg)
}
