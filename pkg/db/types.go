package db

import (
	"encoding/json"
	"time"
)

// Agent represents a registered backup agent.
type Agent struct {
	AgentID      string    `json:"agent_id"`
	Hostname     string    `json:"hostname"`
	IPAddress    string    `json:"ip_address"`
	OS           string    `json:"os"`
	AgentVersion string    `json:"agent_version"`
	Enabled      bool      `json:"enabled"`
	Healthy      bool      `json:"healthy"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
	ConfigHash   string    `json:"config_hash,omitempty"`
}

// AgentConfig is the server-side copy of an agent's configuration,
// stored as an opaque JSON document.
type AgentConfig struct {
	AgentID   string          `json:"agent_id"`
	Config    json.RawMessage `json:"config"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Backup job status values reported by agents.
const (
	BackupStatusSuccess = "success"
	BackupStatusFailed  = "failed"
	BackupStatusRunning = "running"
)

// BackupJob represents a single backup run reported by an agent.
type BackupJob struct {
	ID           int64      `json:"id"`
	AgentID      string     `json:"agent_id"`
	Status       string     `json:"status"`
	Tool         string     `json:"tool"`
	Source       string     `json:"source"`
	Destination  string     `json:"destination"`
	SizeBytes    int64      `json:"size_bytes"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Logs         string     `json:"logs,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Event is a system event row (agent offline, backup failed, ...).
type Event struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	AgentID     string    `json:"agent_id,omitempty"`
	Priority    string    `json:"priority"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventFilter narrows ListEvents results. Zero values mean "any".
type EventFilter struct {
	Category string
	Priority string
	AgentID  string
	Since    time.Time
	Limit    int
}

// MetricsSample is a host metrics datapoint reported by an agent.
type MetricsSample struct {
	AgentID        string    `json:"agent_id"`
	CPUPercent     float64   `json:"cpu_percent"`
	MemoryPercent  float64   `json:"memory_percent"`
	DiskReadBytes  int64     `json:"disk_read_bytes"`
	DiskWriteBytes int64     `json:"disk_write_bytes"`
	NetBytesSent   int64     `json:"net_bytes_sent"`
	NetBytesRecv   int64     `json:"net_bytes_recv"`
	Timestamp      time.Time `json:"timestamp"`
}

// BackupSummary counts jobs by status.
type BackupSummary struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Running int `json:"running"`
}

// Overview is the aggregate view behind the dashboard stats cards.
type Overview struct {
	TotalAgents    int           `json:"total_agents"`
	OnlineAgents   int           `json:"online_agents"`
	TotalBackups   int           `json:"total_backups"`
	BackupSummary  BackupSummary `json:"backup_summary"`
	SuccessRate    float64       `json:"success_rate"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
}

// TrendPoint is one day of backup activity.
type TrendPoint struct {
	Date               string  `json:"date"`
	TotalBackups       int     `json:"total_backups"`
	SuccessBackups     int     `json:"success_backups"`
	FailedBackups      int     `json:"failed_backups"`
	TotalSizeBytes     int64   `json:"total_size_bytes"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}

// AgentStats summarizes a single agent for the dashboard.
type AgentStats struct {
	AgentID        string     `json:"agent_id"`
	Hostname       string     `json:"hostname"`
	TotalBackups   int        `json:"total_backups"`
	SuccessBackups int        `json:"success_backups"`
	FailedBackups  int        `json:"failed_backups"`
	SuccessRate    float64    `json:"success_rate"`
	LastBackup     *time.Time `json:"last_backup,omitempty"`
	Status         string     `json:"status"`
	LastSeen       time.Time  `json:"last_seen"`
}
