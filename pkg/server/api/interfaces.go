// Package api pkg/server/api/interfaces.go

//go:generate mockgen -destination=mock_api.go -package=api github.com/backupfleet/backupfleet/pkg/server/api CoreService

package api

import (
	"context"

	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/server"
)

// CoreService is the part of the fleet server the HTTP layer talks to.
type CoreService interface {
	RegisterAgent(ctx context.Context, req *server.RegisterRequest) (*server.RegisterResponse, error)
	Heartbeat(ctx context.Context, agentID string, req *server.HeartbeatRequest) error
	ReportBackup(ctx context.Context, agentID string, job *db.BackupJob) error
	ReportMetrics(ctx context.Context, agentID string, sample *db.MetricsSample) error

	GenerateBackupReport(agentID string, days int) (*server.BackupReport, error)
	GenerateHealthReport() (*server.HealthReport, error)
	GenerateAgentTips(agentID string) ([]server.Tip, error)
	GenerateTips() ([]server.Tip, error)

	Subscribe() (<-chan db.Event, func())
}
