// Package agent implements the host-side backup agent: registration
// and heartbeats against the central server, host metrics collection,
// and a small local web API for on-box inspection.
package agent

import (
	"time"

	"github.com/backupfleet/backupfleet/pkg/config"
	"github.com/backupfleet/backupfleet/pkg/logger"
)

const (
	defaultServerURL         = "http://localhost:9200/api/agents"
	defaultHeartbeatInterval = 5 * time.Minute
	defaultMetricsInterval   = time.Hour
	defaultWebPort           = 8080
)

// Config is the agent's on-disk configuration. The file is rewritten
// wholesale on every change.
type Config struct {
	ServerURL         string          `json:"server_url"`
	AgentID           string          `json:"agent_id"`
	HeartbeatInterval config.Duration `json:"heartbeat_interval"`
	MetricsInterval   config.Duration `json:"metrics_interval"`
	WebPort           int             `json:"web_port"`
	DataDir           string          `json:"data_dir,omitempty"`
	Repositories      []Repository    `json:"repositories"`
	Logging           logger.Config   `json:"logging"`
	Security          Security        `json:"security"`
	Binaries          Binaries        `json:"binaries"`
}

// Repository describes a backup destination the agent writes to.
type Repository struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	Password  string    `json:"password,omitempty"`
	Retention Retention `json:"retention"`
}

// Retention is the snapshot retention policy for a repository.
type Retention struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// Security controls access to the local web API and which servers the
// agent will talk to.
type Security struct {
	WebLocalOnly       bool     `json:"web_local_only"`
	AllowedIPs         []string `json:"allowed_ips"`
	ServerURLWhitelist []string `json:"server_url_whitelist,omitempty"`
}

// Binaries points at the backup tool executables.
type Binaries struct {
	Kopia  string `json:"kopia"`
	Restic string `json:"restic"`
}

// DefaultConfig returns the configuration written when no config file
// exists yet.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:         defaultServerURL,
		HeartbeatInterval: config.Duration(defaultHeartbeatInterval),
		MetricsInterval:   config.Duration(defaultMetricsInterval),
		WebPort:           defaultWebPort,
		Repositories: []Repository{
			{
				ID:        1,
				Name:      "Repo_Local",
				Type:      "filesystem",
				Path:      `C:\ProgramData\BackupFleet\repositories\local`,
				Retention: Retention{Daily: 7, Weekly: 4, Monthly: 12},
			},
		},
		Logging: logger.Config{
			Level:       "info",
			MaxSizeMB:   10,
			BackupCount: 5,
		},
		Security: Security{
			WebLocalOnly: true,
			AllowedIPs:   []string{"127.0.0.1", "::1"},
		},
	}
}

// Validate implements config.Validator, filling in defaults for
// missing fields.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		c.ServerURL = defaultServerURL
	}

	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = config.Duration(defaultHeartbeatInterval)
	}

	if c.MetricsInterval == 0 {
		c.MetricsInterval = config.Duration(defaultMetricsInterval)
	}

	if c.WebPort == 0 {
		c.WebPort = defaultWebPort
	}

	return nil
}

// SystemInfo is the host identity sent during registration.
type SystemInfo struct {
	Hostname     string `json:"hostname"`
	IPAddress    string `json:"ip_address"`
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	CPUCount     int    `json:"cpu_count"`
	TotalMemory  uint64 `json:"total_memory"`
	AgentVersion string `json:"agent_version"`
}

// MetricsPayload is one host metrics sample reported to the server.
type MetricsPayload struct {
	CPUPercent     float64   `json:"cpu_percent"`
	MemoryPercent  float64   `json:"memory_percent"`
	DiskReadBytes  uint64    `json:"disk_read_bytes"`
	DiskWriteBytes uint64    `json:"disk_write_bytes"`
	NetBytesSent   uint64    `json:"net_bytes_sent"`
	NetBytesRecv   uint64    `json:"net_bytes_recv"`
	Timestamp      time.Time `json:"timestamp"`
}

// BackupResult is a completed backup run reported to the server.
type BackupResult struct {
	Status       string     `json:"status"`
	Tool         string     `json:"tool"`
	Source       string     `json:"source"`
	Destination  string     `json:"destination"`
	SizeBytes    int64      `json:"size_bytes"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Logs         string     `json:"logs,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}
