// Package server implements the central backup fleet server: agent
// registration and liveness tracking, backup and metrics ingestion,
// dashboard queries, and webhook alerting.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/server/alerts"
)

// defaultAgentConfig is the stored configuration handed to agents that
// have never been configured through the dashboard.
const defaultAgentConfig = `{
  "heartbeat_interval": "5m",
  "metrics_interval": "1h",
  "web_port": 8080,
  "repositories": [],
  "retention": {"daily": 7, "weekly": 4, "monthly": 12}
}`

// Server owns the fleet state and the background monitoring loop.
type Server struct {
	db       db.Service
	log      *logrus.Logger
	alerters []alerts.AlertService

	alertThreshold time.Duration
	checkInterval  time.Duration
	retention      time.Duration

	mu          sync.Mutex
	subscribers map[chan db.Event]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Server on top of an open database service.
func New(cfg *Config, database db.Service, log *logrus.Logger) *Server {
	s := &Server{
		db:             database,
		log:            log,
		alertThreshold: time.Duration(cfg.AlertThreshold),
		checkInterval:  time.Duration(cfg.CheckInterval),
		retention:      time.Duration(cfg.RetentionPeriod),
		subscribers:    make(map[chan db.Event]struct{}),
		done:           make(chan struct{}),
	}

	for _, wh := range cfg.Webhooks {
		if wh.Enabled {
			s.alerters = append(s.alerters, alerts.NewWebhookAlerter(wh))
		}
	}

	return s
}

// Start launches the liveness monitor and retention cleanup loops.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.publishEvent(&db.Event{
		Category:    "system",
		EventType:   "startup",
		Description: "server started",
		Priority:    "low",
	})

	go s.monitorAgents(ctx)

	return nil
}

// Stop shuts down the background loops.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}

	return nil
}

func (s *Server) monitorAgents(ctx context.Context) {
	defer close(s.done)

	checkTicker := time.NewTicker(s.checkInterval)
	defer checkTicker.Stop()

	cleanupTicker := time.NewTicker(defaultCleanupPeriod)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-checkTicker.C:
			s.checkAgents(ctx)
		case <-cleanupTicker.C:
			if err := s.db.CleanOldData(s.retention); err != nil {
				s.log.WithError(err).Error("Failed to clean old data")
			}
		}
	}
}

func (s *Server) checkAgents(ctx context.Context) {
	stale, err := s.db.ListStaleAgents(s.alertThreshold)
	if err != nil {
		s.log.WithError(err).Error("Failed to list stale agents")
		return
	}

	for i := range stale {
		agent := &stale[i]
		if !agent.Healthy {
			continue // already marked offline
		}

		s.markAgentOffline(ctx, agent)
	}
}

func (s *Server) markAgentOffline(ctx context.Context, agent *db.Agent) {
	if err := s.db.UpdateAgentHealth(agent.AgentID, false); err != nil {
		s.log.WithError(err).WithField("agent_id", agent.AgentID).
			Error("Failed to mark agent offline")
		return
	}

	s.log.WithFields(logrus.Fields{
		"agent_id":  agent.AgentID,
		"hostname":  agent.Hostname,
		"last_seen": agent.LastSeen,
	}).Warn("Agent went offline")

	s.publishEvent(&db.Event{
		Category:    "agent",
		EventType:   "offline",
		Description: fmt.Sprintf("agent '%s' stopped reporting", agent.Hostname),
		AgentID:     agent.AgentID,
		Priority:    "high",
	})

	s.sendAlert(ctx, alerts.AgentOffline(agent.AgentID, agent.Hostname, agent.LastSeen))
}

// RegisterAgent registers an agent, keyed by hostname, and ensures it
// has a stored configuration.
func (s *Server) RegisterAgent(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if req.Hostname == "" {
		return nil, fmt.Errorf("%w: hostname is required", ErrInvalidRequest)
	}

	agent, err := s.db.UpsertAgent(&db.Agent{
		Hostname:     req.Hostname,
		IPAddress:    req.IPAddress,
		OS:           req.OS,
		AgentVersion: req.AgentVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToRegister, err)
	}

	// A machine that was marked offline and comes back by
	// re-registering recovers the same way a heartbeat would.
	if !agent.Healthy {
		s.processRecovery(ctx, agent, time.Now().UTC())
	}

	if _, err := s.db.GetAgentConfig(agent.AgentID); errors.Is(err, db.ErrAgentNotFound) {
		saveErr := s.db.SaveAgentConfig(&db.AgentConfig{
			AgentID: agent.AgentID,
			Config:  json.RawMessage(defaultAgentConfig),
		})
		if saveErr != nil {
			s.log.WithError(saveErr).WithField("agent_id", agent.AgentID).
				Error("Failed to store default config")
		}
	}

	s.log.WithFields(logrus.Fields{
		"agent_id": agent.AgentID,
		"hostname": agent.Hostname,
	}).Info("Agent registered")

	s.publishEvent(&db.Event{
		Category:    "agent",
		EventType:   "register",
		Description: fmt.Sprintf("agent '%s' registered", agent.Hostname),
		AgentID:     agent.AgentID,
		Priority:    "low",
	})

	return &RegisterResponse{AgentID: agent.AgentID}, nil
}

// Heartbeat records a liveness report. It returns db.ErrAgentNotFound
// for unknown agents so the transport layer can answer 404 and the
// agent can re-register.
func (s *Server) Heartbeat(ctx context.Context, agentID string, _ *HeartbeatRequest) error {
	agent, err := s.db.GetAgent(agentID)
	if err != nil {
		return err
	}

	seen := time.Now().UTC()
	if err := s.db.UpdateAgentHeartbeat(agentID, seen); err != nil {
		return err
	}

	if !agent.Healthy {
		s.processRecovery(ctx, agent, seen)
	}

	return nil
}

// processRecovery transitions a previously offline agent back to
// healthy. The database update happens before the alert so a webhook
// failure cannot leave the agent stuck offline.
func (s *Server) processRecovery(ctx context.Context, agent *db.Agent, seen time.Time) {
	if err := s.db.UpdateAgentHealth(agent.AgentID, true); err != nil {
		s.log.WithError(err).WithField("agent_id", agent.AgentID).
			Error("Failed to mark agent recovered")
		return
	}

	s.log.WithFields(logrus.Fields{
		"agent_id": agent.AgentID,
		"hostname": agent.Hostname,
	}).Info("Agent recovered")

	s.publishEvent(&db.Event{
		Category:    "agent",
		EventType:   "online",
		Description: fmt.Sprintf("agent '%s' is back online", agent.Hostname),
		AgentID:     agent.AgentID,
		Priority:    "medium",
	})

	s.sendAlert(ctx, alerts.AgentRecovered(agent.AgentID, agent.Hostname, seen))
}

// ReportBackup records a completed or running backup job from an agent.
func (s *Server) ReportBackup(ctx context.Context, agentID string, job *db.BackupJob) error {
	agent, err := s.db.GetAgent(agentID)
	if err != nil {
		return err
	}

	switch job.Status {
	case db.BackupStatusSuccess, db.BackupStatusFailed, db.BackupStatusRunning:
	default:
		return fmt.Errorf("%w: unknown backup status %q", ErrInvalidRequest, job.Status)
	}

	job.AgentID = agentID
	if job.StartTime.IsZero() {
		job.StartTime = time.Now().UTC()
	}

	if _, err := s.db.InsertBackupJob(job); err != nil {
		return fmt.Errorf("%w: %w", errFailedToReport, err)
	}

	if job.Status == db.BackupStatusFailed {
		s.publishEvent(&db.Event{
			Category:    "backup",
			EventType:   "failed",
			Description: fmt.Sprintf("backup of '%s' failed on '%s'", job.Source, agent.Hostname),
			AgentID:     agentID,
			Priority:    "high",
		})

		s.sendAlert(ctx, alerts.BackupFailed(agentID, agent.Hostname, job.Source, job.ErrorMessage))
	}

	return nil
}

// ReportMetrics records a host metrics sample from an agent.
func (s *Server) ReportMetrics(_ context.Context, agentID string, sample *db.MetricsSample) error {
	if _, err := s.db.GetAgent(agentID); err != nil {
		return err
	}

	sample.AgentID = agentID

	if err := s.db.InsertMetrics(sample); err != nil {
		return fmt.Errorf("%w: %w", errFailedToReport, err)
	}

	return nil
}

func (s *Server) sendAlert(ctx context.Context, alert *alerts.WebhookAlert) {
	for _, alerter := range s.alerters {
		if !alerter.IsEnabled() {
			continue
		}

		if err := alerter.Alert(ctx, alert); err != nil {
			if errors.Is(err, alerts.ErrWebhookCooldown) {
				s.log.WithField("title", alert.Title).Debug("Alert suppressed by cooldown")
				continue
			}

			s.log.WithError(err).WithField("title", alert.Title).Error("Failed to send alert")
		}
	}
}

// publishEvent persists an event and fans it out to subscribers.
func (s *Server) publishEvent(ev *db.Event) {
	if err := s.db.InsertEvent(ev); err != nil {
		s.log.WithError(err).Error("Failed to store event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		select {
		case ch <- *ev:
		default: // slow subscriber, drop
		}
	}
}

// Subscribe returns a channel of live events and a cancel function.
// Slow subscribers miss events rather than blocking the publisher.
func (s *Server) Subscribe() (<-chan db.Event, func()) {
	ch := make(chan db.Event, 16)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		delete(s.subscribers, ch)
		s.mu.Unlock()
	}
}
