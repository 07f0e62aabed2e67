package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/backupfleet/backupfleet/pkg/db"
)

func completedJob(start time.Time, dur time.Duration) db.BackupJob {
	end := start.Add(dur)

	return db.BackupJob{Status: db.BackupStatusSuccess, StartTime: start, EndTime: &end}
}

func TestGenerateAgentTipsHighFailureRate(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID:       "agent-1",
		TotalBackups:  10,
		FailedBackups: 5,
		SuccessRate:   50,
		Status:        "online",
		LastSeen:      time.Now().UTC(),
	}, nil)
	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return([]db.BackupJob{
		completedJob(time.Now().UTC().Add(-2*time.Hour), 5*time.Minute),
	}, nil)

	tips, err := srv.GenerateAgentTips("agent-1")
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Equal(t, "backup_high_failure_rate", tips[0].ID)
	assert.Equal(t, "critical", tips[0].Priority)
	assert.Equal(t, "agent-1", tips[0].AgentID)
	assert.NotEmpty(t, tips[0].Solutions)
	assert.NotEmpty(t, tips[0].Resources)
}

func TestGenerateAgentTipsSlowBackups(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID:       "agent-1",
		TotalBackups:  10,
		FailedBackups: 1,
		SuccessRate:   85,
		Status:        "online",
		LastSeen:      time.Now().UTC(),
	}, nil)
	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return([]db.BackupJob{
		completedJob(time.Now().UTC().Add(-5*time.Hour), 2*time.Hour),
	}, nil)

	tips, err := srv.GenerateAgentTips("agent-1")
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Equal(t, "backup_slow_performance", tips[0].ID)
	assert.Equal(t, "high", tips[0].Priority)
}

func TestGenerateAgentTipsOfflineAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID:     "agent-1",
		SuccessRate: 100,
		Status:      "offline",
		LastSeen:    time.Now().UTC().Add(-2 * time.Hour),
	}, nil)
	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return(nil, nil)

	tips, err := srv.GenerateAgentTips("agent-1")
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Equal(t, "agent_offline", tips[0].ID)
	assert.Equal(t, "critical", tips[0].Priority)
}

func TestGenerateAgentTipsHealthyAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID:      "agent-1",
		TotalBackups: 10,
		SuccessRate:  100,
		Status:       "online",
		LastSeen:     time.Now().UTC(),
	}, nil)
	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return([]db.BackupJob{
		completedJob(time.Now().UTC().Add(-time.Hour), 10*time.Minute),
	}, nil)

	tips, err := srv.GenerateAgentTips("agent-1")
	require.NoError(t, err)
	assert.Empty(t, tips)
}

func TestGenerateTipsLowStorage(t *testing.T) {
	srv, mockDB := newTestServer(t)

	// 950 GB used of the 1000 GB pool crosses the 90% threshold
	mockDB.EXPECT().GetOverview(15*time.Minute).Return(&db.Overview{
		TotalSizeBytes: 950 << 30,
	}, nil)
	mockDB.EXPECT().ListAgents().Return(nil, nil)

	tips, err := srv.GenerateTips()
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Equal(t, "storage_low_space", tips[0].ID)
	assert.True(t, tips[0].SystemWide)
	assert.Empty(t, tips[0].AgentID)
}

func TestGenerateTipsSortsByPriority(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetOverview(15*time.Minute).Return(&db.Overview{
		TotalSizeBytes: 950 << 30,
	}, nil)
	mockDB.EXPECT().ListAgents().Return([]db.Agent{{AgentID: "agent-1"}}, nil)
	mockDB.EXPECT().GetAgentStats("agent-1", 15*time.Minute).Return(&db.AgentStats{
		AgentID:       "agent-1",
		TotalBackups:  10,
		FailedBackups: 1,
		SuccessRate:   85,
		Status:        "online",
		LastSeen:      time.Now().UTC(),
	}, nil)
	mockDB.EXPECT().ListBackupJobsSince(gomock.Any(), "agent-1").Return([]db.BackupJob{
		completedJob(time.Now().UTC().Add(-5*time.Hour), 2*time.Hour),
	}, nil)

	tips, err := srv.GenerateTips()
	require.NoError(t, err)

	// The critical storage tip outranks the agent's high-priority one
	require.Len(t, tips, 2)
	assert.Equal(t, "storage_low_space", tips[0].ID)
	assert.Equal(t, "backup_slow_performance", tips[1].ID)
}
