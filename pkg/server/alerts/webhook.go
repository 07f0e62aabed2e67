package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/backupfleet/backupfleet/pkg/config"
)

var (
	// ErrWebhookCooldown is returned when an alert is suppressed because
	// the same title fired within the cooldown window.
	ErrWebhookCooldown = errors.New("alert is within cooldown period")

	errWebhookDisabled   = errors.New("webhook alerter is disabled")
	errInvalidJSON       = errors.New("invalid JSON generated")
	errWebhookStatus     = errors.New("webhook returned non-2xx status")
	errTemplateParse     = errors.New("template parsing failed")
	errTemplateExecution = errors.New("template execution failed")
)

const webhookTimeout = 10 * time.Second

// WebhookConfig configures a single webhook destination.
type WebhookConfig struct {
	Enabled  bool            `json:"enabled"`
	URL      string          `json:"url"`
	Headers  []Header        `json:"headers,omitempty"`  // Custom headers
	Template string          `json:"template,omitempty"` // Optional JSON template
	Cooldown config.Duration `json:"cooldown,omitempty"`
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type AlertLevel string

const (
	Info    AlertLevel = "info"
	Warning AlertLevel = "warning"
	Error   AlertLevel = "error"
)

// WebhookAlert is the payload posted to a webhook destination.
type WebhookAlert struct {
	Level     AlertLevel     `json:"level"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	AgentID   string         `json:"agent_id,omitempty"`
	Hostname  string         `json:"hostname,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// AgentOffline builds the alert raised when an agent misses heartbeats.
func AgentOffline(agentID, hostname string, lastSeen time.Time) *WebhookAlert {
	return &WebhookAlert{
		Level:    Error,
		Title:    "Agent Offline",
		Message:  fmt.Sprintf("Agent '%s' has not sent a heartbeat since %s", hostname, lastSeen.UTC().Format(time.RFC3339)),
		AgentID:  agentID,
		Hostname: hostname,
		Details: map[string]any{
			"last_seen": lastSeen.UTC().Format(time.RFC3339),
		},
	}
}

// AgentRecovered builds the alert raised when an offline agent
// heartbeats again.
func AgentRecovered(agentID, hostname string, seen time.Time) *WebhookAlert {
	return &WebhookAlert{
		Level:    Info,
		Title:    "Agent Recovered",
		Message:  fmt.Sprintf("Agent '%s' is back online", hostname),
		AgentID:  agentID,
		Hostname: hostname,
		Details: map[string]any{
			"recovery_time": seen.UTC().Format(time.RFC3339),
		},
	}
}

// BackupFailed builds the alert raised when an agent reports a failed
// backup run.
func BackupFailed(agentID, hostname, source, errorMessage string) *WebhookAlert {
	return &WebhookAlert{
		Level:    Error,
		Title:    "Backup Failed",
		Message:  fmt.Sprintf("Backup of '%s' failed on agent '%s'", source, hostname),
		AgentID:  agentID,
		Hostname: hostname,
		Details: map[string]any{
			"source": source,
			"error":  errorMessage,
		},
	}
}

// WebhookAlerter posts alerts to a configured webhook URL, with a
// per-title cooldown to keep flapping agents from flooding the target.
type WebhookAlerter struct {
	config         WebhookConfig
	client         *http.Client
	lastAlertTimes map[string]time.Time
	mu             sync.Mutex
}

func NewWebhookAlerter(cfg WebhookConfig) *WebhookAlerter {
	return &WebhookAlerter{
		config: cfg,
		client: &http.Client{
			Timeout: webhookTimeout,
		},
		lastAlertTimes: make(map[string]time.Time),
	}
}

func (w *WebhookAlerter) IsEnabled() bool {
	return w.config.Enabled
}

func (w *WebhookAlerter) Alert(ctx context.Context, alert *WebhookAlert) error {
	if !w.IsEnabled() {
		return errWebhookDisabled
	}

	if err := w.checkCooldown(alert.Title); err != nil {
		return err
	}

	if alert.Timestamp == "" {
		alert.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := w.preparePayload(alert)
	if err != nil {
		return fmt.Errorf("failed to prepare payload: %w", err)
	}

	return w.sendRequest(ctx, payload)
}

func (w *WebhookAlerter) checkCooldown(alertTitle string) error {
	cooldown := time.Duration(w.config.Cooldown)
	if cooldown <= 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	lastAlertTime, exists := w.lastAlertTimes[alertTitle]
	if exists && time.Since(lastAlertTime) < cooldown {
		return ErrWebhookCooldown
	}

	w.lastAlertTimes[alertTitle] = time.Now()

	return nil
}

func (w *WebhookAlerter) preparePayload(alert *WebhookAlert) ([]byte, error) {
	if w.config.Template == "" {
		return json.Marshal(alert)
	}

	return w.executeTemplate(alert)
}

func (w *WebhookAlerter) executeTemplate(alert *WebhookAlert) ([]byte, error) {
	tmpl, err := template.New("webhook").
		Funcs(template.FuncMap{
			"json": func(v interface{}) (string, error) {
				data, err := json.Marshal(v)
				if err != nil {
					return "", fmt.Errorf("JSON marshaling failed: %w", err)
				}

				return string(data), nil
			},
		}).
		Parse(w.config.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTemplateParse, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{
		"alert": alert,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", errTemplateExecution, err)
	}

	if !json.Valid(buf.Bytes()) {
		return nil, errInvalidJSON
	}

	return buf.Bytes(), nil
}

func (w *WebhookAlerter) sendRequest(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	w.setHeaders(req)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return fmt.Errorf("%w: status=%d body=%s", errWebhookStatus, resp.StatusCode, string(body))
	}

	return nil
}

func (w *WebhookAlerter) setHeaders(req *http.Request) {
	hasContentType := false

	for _, header := range w.config.Headers {
		if strings.EqualFold(header.Key, "content-type") {
			hasContentType = true
		}

		req.Header.Set(header.Key, header.Value)
	}

	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}
}
