package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/backupfleet/backupfleet/pkg/config"
	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/server/alerts"
)

func newTestServer(t *testing.T) (*Server, *db.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockDB := db.NewMockService(ctrl)

	cfg := &Config{
		AlertThreshold: config.Duration(15 * time.Minute),
		CheckInterval:  config.Duration(time.Minute),
	}
	require.NoError(t, cfg.Validate())

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return New(cfg, mockDB, log), mockDB
}

func TestRegisterAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	registered := &db.Agent{
		AgentID:  "agent-1",
		Hostname: "host-a",
		Enabled:  true,
		Healthy:  true,
	}

	mockDB.EXPECT().UpsertAgent(gomock.Any()).Return(registered, nil)
	mockDB.EXPECT().GetAgentConfig("agent-1").Return(nil, db.ErrAgentNotFound)
	mockDB.EXPECT().SaveAgentConfig(gomock.Any()).DoAndReturn(func(cfg *db.AgentConfig) error {
		assert.Equal(t, "agent-1", cfg.AgentID)
		assert.True(t, json.Valid(cfg.Config))
		return nil
	})
	mockDB.EXPECT().InsertEvent(gomock.Any()).DoAndReturn(func(ev *db.Event) error {
		assert.Equal(t, "register", ev.EventType)
		assert.Equal(t, "agent-1", ev.AgentID)
		return nil
	})

	resp, err := srv.RegisterAgent(context.Background(), &RegisterRequest{
		Hostname:  "host-a",
		IPAddress: "192.168.1.10",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent-1", resp.AgentID)
}

func TestRegisterAgentKeepsExistingConfig(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().UpsertAgent(gomock.Any()).Return(&db.Agent{AgentID: "agent-1", Hostname: "host-a"}, nil)
	mockDB.EXPECT().GetAgentConfig("agent-1").Return(&db.AgentConfig{
		AgentID: "agent-1",
		Config:  []byte(`{"web_port": 9090}`),
	}, nil)
	mockDB.EXPECT().InsertEvent(gomock.Any()).Return(nil)

	_, err := srv.RegisterAgent(context.Background(), &RegisterRequest{Hostname: "host-a"})
	require.NoError(t, err)
}

func TestRegisterAgentRecoversOfflineAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	ctrl := gomock.NewController(t)
	alerter := alerts.NewMockAlertService(ctrl)
	srv.alerters = []alerts.AlertService{alerter}

	mockDB.EXPECT().UpsertAgent(gomock.Any()).Return(&db.Agent{
		AgentID: "agent-1", Hostname: "host-a", Healthy: false,
	}, nil)
	mockDB.EXPECT().UpdateAgentHealth("agent-1", true).Return(nil)
	mockDB.EXPECT().GetAgentConfig("agent-1").Return(&db.AgentConfig{AgentID: "agent-1"}, nil)

	var eventTypes []string

	mockDB.EXPECT().InsertEvent(gomock.Any()).Times(2).DoAndReturn(func(ev *db.Event) error {
		eventTypes = append(eventTypes, ev.EventType)
		return nil
	})

	alerter.EXPECT().IsEnabled().Return(true)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert *alerts.WebhookAlert) error {
			assert.Equal(t, "Agent Recovered", alert.Title)
			return nil
		})

	resp, err := srv.RegisterAgent(context.Background(), &RegisterRequest{Hostname: "host-a"})
	require.NoError(t, err)
	assert.Equal(t, "agent-1", resp.AgentID)
	assert.ElementsMatch(t, []string{"online", "register"}, eventTypes)
}

func TestRegisterAgentRequiresHostname(t *testing.T) {
	srv, _ := newTestServer(t)

	_, err := srv.RegisterAgent(context.Background(), &RegisterRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestHeartbeatUnknownAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgent("missing").Return(nil, db.ErrAgentNotFound)

	err := srv.Heartbeat(context.Background(), "missing", &HeartbeatRequest{})
	assert.ErrorIs(t, err, db.ErrAgentNotFound)
}

func TestHeartbeatHealthyAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgent("agent-1").Return(&db.Agent{
		AgentID: "agent-1", Hostname: "host-a", Healthy: true,
	}, nil)
	mockDB.EXPECT().UpdateAgentHeartbeat("agent-1", gomock.Any()).Return(nil)

	require.NoError(t, srv.Heartbeat(context.Background(), "agent-1", &HeartbeatRequest{}))
}

func TestHeartbeatRecoversOfflineAgent(t *testing.T) {
	srv, mockDB := newTestServer(t)

	ctrl := gomock.NewController(t)
	alerter := alerts.NewMockAlertService(ctrl)
	srv.alerters = []alerts.AlertService{alerter}

	mockDB.EXPECT().GetAgent("agent-1").Return(&db.Agent{
		AgentID: "agent-1", Hostname: "host-a", Healthy: false,
	}, nil)
	mockDB.EXPECT().UpdateAgentHeartbeat("agent-1", gomock.Any()).Return(nil)
	mockDB.EXPECT().UpdateAgentHealth("agent-1", true).Return(nil)
	mockDB.EXPECT().InsertEvent(gomock.Any()).DoAndReturn(func(ev *db.Event) error {
		assert.Equal(t, "online", ev.EventType)
		return nil
	})

	alerter.EXPECT().IsEnabled().Return(true)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert *alerts.WebhookAlert) error {
			assert.Equal(t, "Agent Recovered", alert.Title)
			return nil
		})

	require.NoError(t, srv.Heartbeat(context.Background(), "agent-1", &HeartbeatRequest{}))
}

func TestReportBackupFailureAlerts(t *testing.T) {
	srv, mockDB := newTestServer(t)

	ctrl := gomock.NewController(t)
	alerter := alerts.NewMockAlertService(ctrl)
	srv.alerters = []alerts.AlertService{alerter}

	mockDB.EXPECT().GetAgent("agent-1").Return(&db.Agent{
		AgentID: "agent-1", Hostname: "host-a", Healthy: true,
	}, nil)
	mockDB.EXPECT().InsertBackupJob(gomock.Any()).Return(int64(7), nil)
	mockDB.EXPECT().InsertEvent(gomock.Any()).DoAndReturn(func(ev *db.Event) error {
		assert.Equal(t, "backup", ev.Category)
		assert.Equal(t, "high", ev.Priority)
		return nil
	})

	alerter.EXPECT().IsEnabled().Return(true)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert *alerts.WebhookAlert) error {
			assert.Equal(t, "Backup Failed", alert.Title)
			return nil
		})

	err := srv.ReportBackup(context.Background(), "agent-1", &db.BackupJob{
		Status:       db.BackupStatusFailed,
		Tool:         "kopia",
		Source:       `C:\Data`,
		ErrorMessage: "repository locked",
	})
	require.NoError(t, err)
}

func TestReportBackupRejectsBadStatus(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgent("agent-1").Return(&db.Agent{AgentID: "agent-1"}, nil)

	err := srv.ReportBackup(context.Background(), "agent-1", &db.BackupJob{Status: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCheckAgentsMarksStaleOffline(t *testing.T) {
	srv, mockDB := newTestServer(t)

	stale := db.Agent{
		AgentID:  "agent-1",
		Hostname: "host-a",
		Healthy:  true,
		LastSeen: time.Now().UTC().Add(-time.Hour),
	}
	alreadyOffline := db.Agent{AgentID: "agent-2", Hostname: "host-b", Healthy: false}

	mockDB.EXPECT().ListStaleAgents(15*time.Minute).Return([]db.Agent{stale, alreadyOffline}, nil)
	mockDB.EXPECT().UpdateAgentHealth("agent-1", false).Return(nil)
	mockDB.EXPECT().InsertEvent(gomock.Any()).DoAndReturn(func(ev *db.Event) error {
		assert.Equal(t, "offline", ev.EventType)
		assert.Equal(t, "agent-1", ev.AgentID)
		return nil
	})

	srv.checkAgents(context.Background())
}

func TestSubscribeReceivesEvents(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().InsertEvent(gomock.Any()).Return(nil)

	ch, cancel := srv.Subscribe()
	defer cancel()

	srv.publishEvent(&db.Event{Category: "system", EventType: "startup", Priority: "low"})

	select {
	case ev := <-ch:
		assert.Equal(t, "startup", ev.EventType)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestReportMetrics(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().GetAgent("agent-1").Return(&db.Agent{AgentID: "agent-1"}, nil)
	mockDB.EXPECT().InsertMetrics(gomock.Any()).DoAndReturn(func(s *db.MetricsSample) error {
		assert.Equal(t, "agent-1", s.AgentID)
		return nil
	})

	err := srv.ReportMetrics(context.Background(), "agent-1", &db.MetricsSample{CPUPercent: 50})
	require.NoError(t, err)
}
