package server

import (
	"time"

	"github.com/backupfleet/backupfleet/pkg/config"
	"github.com/backupfleet/backupfleet/pkg/logger"
	"github.com/backupfleet/backupfleet/pkg/server/alerts"
)

const (
	defaultListenAddr     = ":9200"
	defaultDBPath         = "backupfleet.db"
	defaultAlertThreshold = 15 * time.Minute
	defaultCheckInterval  = time.Minute
	defaultRetention      = 30 * 24 * time.Hour
	defaultCleanupPeriod  = time.Hour
)

// Config holds the central server configuration.
type Config struct {
	ListenAddr      string                 `json:"listen_addr"`
	DBPath          string                 `json:"db_path"`
	AlertThreshold  config.Duration        `json:"alert_threshold"`
	CheckInterval   config.Duration        `json:"check_interval"`
	RetentionPeriod config.Duration        `json:"retention_period"`
	StaticDir       string                 `json:"static_dir,omitempty"`
	Webhooks        []alerts.WebhookConfig `json:"webhooks,omitempty"`
	Logging         logger.Config          `json:"logging"`
}

// Validate implements config.Validator, filling in defaults.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}

	if c.AlertThreshold == 0 {
		c.AlertThreshold = config.Duration(defaultAlertThreshold)
	}

	if c.CheckInterval == 0 {
		c.CheckInterval = config.Duration(defaultCheckInterval)
	}

	if c.RetentionPeriod == 0 {
		c.RetentionPeriod = config.Duration(defaultRetention)
	}

	return nil
}

// RegisterRequest is the body an agent posts when it registers.
type RegisterRequest struct {
	Hostname     string `json:"hostname"`
	IPAddress    string `json:"ip_address"`
	OS           string `json:"os"`
	AgentVersion string `json:"agent_version"`
}

// RegisterResponse is returned to a successfully registered agent.
type RegisterResponse struct {
	AgentID string `json:"agent_id"`
}

// HeartbeatRequest carries the optional fields an agent may refresh on
// each heartbeat.
type HeartbeatRequest struct {
	Hostname     string `json:"hostname,omitempty"`
	IPAddress    string `json:"ip_address,omitempty"`
	AgentVersion string `json:"agent_version,omitempty"`
}
