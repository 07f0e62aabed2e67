package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotRegistered is returned when the server answers 404 to a
	// heartbeat or report, meaning the agent must register again.
	ErrNotRegistered = errors.New("agent not registered with server")

	// ErrServerRejected covers any other non-2xx server response.
	ErrServerRejected = errors.New("server rejected request")

	errEmptyAgentID = errors.New("server returned empty agent_id")
)

const (
	registerTimeout = 10 * time.Second
	reportTimeout   = 15 * time.Second
)

// Client talks to the central server's agent-facing API. serverURL is
// the base, e.g. "http://localhost:9200/api/agents".
type Client struct {
	http      *resty.Client
	serverURL string
	log       *logrus.Logger
}

func NewClient(serverURL, version string, log *logrus.Logger) *Client {
	c := resty.New()
	c.SetTimeout(reportTimeout)
	c.SetHeader("User-Agent", "backupfleet-agent/"+version)
	c.SetHeader("Content-Type", "application/json")

	return &Client{
		http:      c,
		serverURL: strings.TrimRight(serverURL, "/"),
		log:       log,
	}
}

// Register announces the host to the server and returns the assigned
// agent ID.
func (c *Client) Register(ctx context.Context, info *SystemInfo) (string, error) {
	var result struct {
		AgentID string `json:"agent_id"`
	}

	ctx, cancel := context.WithTimeout(ctx, registerTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(info).
		SetResult(&result).
		Post(c.serverURL + "/register")
	if err != nil {
		return "", fmt.Errorf("registration request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: registration returned %d", ErrServerRejected, resp.StatusCode())
	}

	if result.AgentID == "" {
		return "", errEmptyAgentID
	}

	return result.AgentID, nil
}

// Heartbeat reports liveness for a registered agent.
func (c *Client) Heartbeat(ctx context.Context, agentID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(struct{}{}).
		Post(c.serverURL + "/heartbeat/" + agentID)
	if err != nil {
		return fmt.Errorf("heartbeat request failed: %w", err)
	}

	return c.checkStatus(resp)
}

// ReportMetrics sends one host metrics sample.
func (c *Client) ReportMetrics(ctx context.Context, agentID string, m *MetricsPayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(m).
		Post(c.serverURL + "/metrics/" + agentID)
	if err != nil {
		return fmt.Errorf("metrics request failed: %w", err)
	}

	return c.checkStatus(resp)
}

// ReportBackup sends the outcome of a backup run.
func (c *Client) ReportBackup(ctx context.Context, agentID string, result *BackupResult) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(result).
		Post(c.serverURL + "/backup/" + agentID)
	if err != nil {
		return fmt.Errorf("backup report request failed: %w", err)
	}

	return c.checkStatus(resp)
}

func (c *Client) checkStatus(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusOK:
		return nil
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotRegistered
	default:
		return fmt.Errorf("%w: status %d", ErrServerRejected, resp.StatusCode())
	}
}
