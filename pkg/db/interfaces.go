// Package db pkg/db/interfaces.go
package db

import (
	"time"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/backupfleet/backupfleet/pkg/db Service

// Service represents all database operations.
type Service interface {
	Close() error

	// Agent operations.

	UpsertAgent(agent *Agent) (*Agent, error)
	GetAgent(agentID string) (*Agent, error)
	GetAgentByHostname(hostname string) (*Agent, error)
	ListAgents() ([]Agent, error)
	UpdateAgentEnabled(agentID string, enabled bool) error
	UpdateAgentHeartbeat(agentID string, seen time.Time) error
	UpdateAgentHealth(agentID string, healthy bool) error
	ListStaleAgents(threshold time.Duration) ([]Agent, error)

	// Agent config operations.

	GetAgentConfig(agentID string) (*AgentConfig, error)
	SaveAgentConfig(cfg *AgentConfig) error

	// Backup job operations.

	InsertBackupJob(job *BackupJob) (int64, error)
	ListBackupJobs(limit int) ([]BackupJob, error)
	ListAgentBackupJobs(agentID string, limit int) ([]BackupJob, error)
	ListBackupJobsSince(since time.Time, agentID string) ([]BackupJob, error)

	// Aggregations for the dashboard.

	GetOverview(onlineThreshold time.Duration) (*Overview, error)
	GetBackupTrends(days int) ([]TrendPoint, error)
	GetAgentStats(agentID string, onlineThreshold time.Duration) (*AgentStats, error)

	// Event operations.

	InsertEvent(ev *Event) error
	ListEvents(filter EventFilter) ([]Event, error)

	// Metrics operations.

	InsertMetrics(sample *MetricsSample) error
	GetAgentMetrics(agentID string, start, end time.Time) ([]MetricsSample, error)

	// Maintenance operations.

	CleanOldData(retentionPeriod time.Duration) error
}
