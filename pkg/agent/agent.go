package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var errServerNotWhitelisted = errors.New("server URL not in whitelist")

// Agent ties together the config manager, the server client, the
// background reporting loops, and the local web API.
type Agent struct {
	cfg     *ConfigManager
	client  *Client
	log     *logrus.Logger
	version string

	mu            sync.RWMutex
	lastHeartbeat time.Time
	startTime     time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg *ConfigManager, log *logrus.Logger, version string) *Agent {
	return &Agent{
		cfg:     cfg,
		client:  NewClient(cfg.Get().ServerURL, version, log),
		log:     log,
		version: version,
	}
}

// Start registers with the server (best effort) and launches the
// heartbeat and metrics loops. A failed registration is retried on the
// heartbeat cadence, so an unreachable server never blocks startup.
func (a *Agent) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	a.mu.Lock()
	a.startTime = time.Now().UTC()
	a.mu.Unlock()

	if err := a.register(ctx); err != nil {
		a.log.WithError(err).Warn("Initial registration failed, will retry")
	}

	a.wg.Add(2)
	go a.heartbeatLoop(ctx)
	go a.metricsLoop(ctx)

	return nil
}

// Stop cancels the background loops and waits for them to exit.
func (a *Agent) Stop() error {
	if a.cancel != nil {
		a.cancel()
		a.wg.Wait()
	}

	return nil
}

// register collects host identity, asks the server for an agent ID,
// and persists it to the config file.
func (a *Agent) register(ctx context.Context) error {
	cfg := a.cfg.Get()

	if err := checkServerWhitelist(cfg.ServerURL, cfg.Security.ServerURLWhitelist); err != nil {
		return err
	}

	info, err := CollectSystemInfo(a.version)
	if err != nil {
		return fmt.Errorf("failed to collect system info: %w", err)
	}

	agentID, err := a.client.Register(ctx, info)
	if err != nil {
		return err
	}

	if err := a.cfg.SetAgentID(agentID); err != nil {
		return fmt.Errorf("failed to persist agent ID: %w", err)
	}

	a.log.WithField("agent_id", agentID).Info("Registered with server")

	return nil
}

func (a *Agent) heartbeatLoop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Duration(a.cfg.Get().HeartbeatInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runHeartbeatCycle(ctx)
		}
	}
}

// runHeartbeatCycle sends one heartbeat. Unregistered agents attempt
// registration instead; no heartbeat is ever sent without an agent ID.
func (a *Agent) runHeartbeatCycle(ctx context.Context) {
	agentID := a.cfg.Get().AgentID
	if agentID == "" {
		if err := a.register(ctx); err != nil {
			a.log.WithError(err).Warn("Registration retry failed")
		}

		return
	}

	err := a.client.Heartbeat(ctx, agentID)
	switch {
	case err == nil:
		a.mu.Lock()
		a.lastHeartbeat = time.Now().UTC()
		a.mu.Unlock()

		a.log.Debug("Heartbeat sent")
	case errors.Is(err, ErrNotRegistered):
		a.log.Warn("Server no longer knows this agent, re-registering")

		if err := a.register(ctx); err != nil {
			a.log.WithError(err).Warn("Re-registration failed")
		}
	default:
		a.log.WithError(err).Warn("Heartbeat failed")
	}
}

func (a *Agent) metricsLoop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Duration(a.cfg.Get().MetricsInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runMetricsCycle(ctx)
		}
	}
}

func (a *Agent) runMetricsCycle(ctx context.Context) {
	agentID := a.cfg.Get().AgentID
	if agentID == "" {
		return
	}

	if err := a.client.ReportMetrics(ctx, agentID, CollectMetrics()); err != nil {
		a.log.WithError(err).Warn("Metrics report failed")
	}
}

// ReportBackup forwards a backup outcome to the server.
func (a *Agent) ReportBackup(ctx context.Context, result *BackupResult) error {
	agentID := a.cfg.Get().AgentID
	if agentID == "" {
		return ErrNotRegistered
	}

	return a.client.ReportBackup(ctx, agentID, result)
}

// Status is the local web API's view of the agent.
type Status struct {
	Status        string     `json:"status"`
	AgentID       string     `json:"agent_id"`
	Hostname      string     `json:"hostname"`
	OS            string     `json:"os"`
	Registered    bool       `json:"registered"`
	ServerURL     string     `json:"server_url"`
	Version       string     `json:"version"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
}

func (a *Agent) Status() *Status {
	cfg := a.cfg.Get()

	hostname, _ := os.Hostname()

	a.mu.RLock()
	defer a.mu.RUnlock()

	st := &Status{
		Status:        "running",
		AgentID:       cfg.AgentID,
		Hostname:      hostname,
		OS:            runtime.GOOS,
		Registered:    cfg.AgentID != "",
		ServerURL:     cfg.ServerURL,
		Version:       a.version,
		UptimeSeconds: time.Since(a.startTime).Seconds(),
	}

	if !a.lastHeartbeat.IsZero() {
		hb := a.lastHeartbeat
		st.LastHeartbeat = &hb
	}

	return st
}

// checkServerWhitelist enforces the server_url_whitelist security
// setting. An empty whitelist allows any server.
func checkServerWhitelist(serverURL string, whitelist []string) error {
	if len(whitelist) == 0 {
		return nil
	}

	for _, prefix := range whitelist {
		if strings.HasPrefix(serverURL, prefix) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", errServerNotWhitelisted, serverURL)
}
