package alerts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backupfleet/backupfleet/pkg/config"
)

func TestWebhookAlerter_Alert(t *testing.T) {
	var received WebhookAlert

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled: true,
		URL:     srv.URL,
	})

	alert := AgentOffline("agent-1", "host-a", time.Now().UTC().Add(-time.Hour))

	require.NoError(t, alerter.Alert(context.Background(), alert))

	assert.Equal(t, Error, received.Level)
	assert.Equal(t, "Agent Offline", received.Title)
	assert.Equal(t, "agent-1", received.AgentID)
	assert.NotEmpty(t, received.Timestamp)
}

func TestWebhookAlerter_Disabled(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{Enabled: false})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "test"})
	assert.Error(t, err)
	assert.False(t, alerter.IsEnabled())
}

func TestWebhookAlerter_Cooldown(t *testing.T) {
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      srv.URL,
		Cooldown: config.Duration(time.Minute),
	})

	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{Title: "Agent Offline"}))

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "Agent Offline"})
	assert.ErrorIs(t, err, ErrWebhookCooldown)

	// Different title is not suppressed
	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{Title: "Backup Failed"}))

	assert.Equal(t, 2, calls)
}

func TestWebhookAlerter_Template(t *testing.T) {
	var payload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      srv.URL,
		Template: `{"text": {{json .alert.Message}}, "severity": "{{.alert.Level}}"}`,
	})

	alert := BackupFailed("agent-1", "host-a", `C:\Data`, "repository locked")

	require.NoError(t, alerter.Alert(context.Background(), alert))

	assert.Equal(t, "error", payload["severity"])
	assert.Contains(t, payload["text"], "host-a")
}

func TestWebhookAlerter_TemplateInvalidJSON(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      "http://127.0.0.1:0",
		Template: `not json {{.alert.Title}}`,
	})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "test"})
	assert.ErrorIs(t, err, errInvalidJSON)
}

func TestWebhookAlerter_CustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled: true,
		URL:     srv.URL,
		Headers: []Header{{Key: "Authorization", Value: "Bearer token123"}},
	})

	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{Title: "test"}))
}

func TestWebhookAlerter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{Enabled: true, URL: srv.URL})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "test"})
	assert.ErrorIs(t, err, errWebhookStatus)
}
