package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/backupfleet/backupfleet/pkg/db"
)

func TestGenerateBackupReport(t *testing.T) {
	srv, mockDB := newTestServer(t)

	now := time.Now().UTC()
	end := now.Add(-time.Hour).Add(10 * time.Minute)

	jobs := []db.BackupJob{
		{ID: 1, AgentID: "agent-1", Status: db.BackupStatusSuccess, Tool: "kopia",
			Source: `C:\Data`, SizeBytes: 10 << 30, StartTime: now.Add(-time.Hour), EndTime: &end},
		{ID: 2, AgentID: "agent-1", Status: db.BackupStatusSuccess, Tool: "kopia",
			Source: `C:\Users`, SizeBytes: 2 << 30, StartTime: now.Add(-2 * time.Hour)},
		{ID: 3, AgentID: "agent-1", Status: db.BackupStatusFailed, Tool: "restic",
			Source: `C:\Users`, StartTime: now.Add(-3 * time.Hour)},
	}

	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "").Return(jobs, nil)

	report, err := srv.GenerateBackupReport("", 7)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 3, report.Summary.TotalBackups)
	assert.Equal(t, 2, report.Summary.SuccessBackups)
	assert.Equal(t, 1, report.Summary.FailedBackups)
	assert.InDelta(t, 66.67, report.Summary.SuccessRate, 0.01)
	assert.InDelta(t, 12.0, report.Summary.TotalSizeGB, 0.01)
	assert.InDelta(t, 600, report.Summary.AvgDurationSeconds, 0.01)

	require.Contains(t, report.ToolBreakdown, "kopia")
	assert.Equal(t, 2, report.ToolBreakdown["kopia"].Count)
	assert.Equal(t, 1, report.ToolBreakdown["restic"].Failed)

	// Largest successful source first
	require.NotEmpty(t, report.TopSources)
	assert.Equal(t, `C:\Data`, report.TopSources[0].Source)

	assert.Len(t, report.DetailedBackups, 3)
}

func TestGenerateBackupReportEmptyPeriod(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return(nil, nil)

	report, err := srv.GenerateBackupReport("agent-1", 7)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestGenerateHealthReport(t *testing.T) {
	srv, mockDB := newTestServer(t)

	now := time.Now().UTC()

	agents := []db.Agent{
		{AgentID: "agent-1", Hostname: "host-a", LastSeen: now.Add(-time.Minute)},
		{AgentID: "agent-2", Hostname: "host-b", LastSeen: now.Add(-2 * time.Hour)},
	}

	mockDB.EXPECT().ListAgents().Return(agents, nil)
	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID: "agent-1", Status: "online",
		TotalBackups: 10, SuccessBackups: 10, SuccessRate: 100,
	}, nil)
	mockDB.EXPECT().GetAgentStats("agent-2", 15*time.Minute).Return(&db.AgentStats{
		AgentID: "agent-2", Status: "offline",
		TotalBackups: 10, SuccessBackups: 5, FailedBackups: 5, SuccessRate: 50,
	}, nil)

	report, err := srv.GenerateHealthReport()
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalAgents)
	assert.Equal(t, 1, report.OnlineAgents)
	assert.Equal(t, 1, report.OfflineAgents)

	healthy := report.Agents[0]
	assert.Empty(t, healthy.Issues)
	assert.Equal(t, 100, healthy.HealthScore)

	sick := report.Agents[1]
	assert.Contains(t, sick.Issues, "high_failure_rate")
	assert.Contains(t, sick.Issues, "not_reporting")
	assert.Contains(t, sick.Issues, "low_success_rate")
	assert.Equal(t, 0, sick.HealthScore)
}

func TestHealthScoreClamped(t *testing.T) {
	// Perfect agent caps at 100 despite the online bonus
	score := healthScore(&db.AgentStats{TotalBackups: 5, SuccessRate: 100}, nil, true)
	assert.Equal(t, 100, score)

	// 50% success: -30 -20 penalties, graduated -15, no bonus
	score = healthScore(&db.AgentStats{TotalBackups: 10, SuccessRate: 50},
		[]string{"high_failure_rate", "low_success_rate"}, false)
	assert.Equal(t, 35, score)
}
