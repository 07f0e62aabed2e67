package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backupfleet/backupfleet/pkg/config"
)

// fakeServer mimics the central server's agent-facing API and records
// what the agent sends it.
type fakeServer struct {
	mu             sync.Mutex
	registerStatus int
	agentID        string
	knownAgents    map[string]bool
	registers      int
	heartbeats     []string

	srv *httptest.Server
}

func newFakeServer(registerStatus int, agentID string) *fakeServer {
	f := &fakeServer{
		registerStatus: registerStatus,
		agentID:        agentID,
		knownAgents:    make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/agents/register", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.registers++

		if f.registerStatus != http.StatusOK {
			http.Error(w, "nope", f.registerStatus)
			return
		}

		f.knownAgents[f.agentID] = true

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"agent_id": "` + f.agentID + `"}`))
	})
	mux.HandleFunc("/api/agents/heartbeat/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id := strings.TrimPrefix(r.URL.Path, "/api/agents/heartbeat/")
		f.heartbeats = append(f.heartbeats, id)

		if !f.knownAgents[id] {
			http.Error(w, "unknown agent", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	})

	f.srv = httptest.NewServer(mux)

	return f
}

func (f *fakeServer) close() { f.srv.Close() }

func (f *fakeServer) heartbeatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.heartbeats)
}

func (f *fakeServer) registerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.registers
}

func newTestAgent(t *testing.T, serverURL string) (*Agent, *ConfigManager) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "agent_config.json")

	m := NewConfigManager(path, testLogger())
	require.NoError(t, m.Load())
	require.NoError(t, m.Update(func(cfg *Config) {
		cfg.ServerURL = serverURL
	}))

	return New(m, testLogger(), "1.0.0"), m
}

func TestRegisterPersistsAgentID(t *testing.T) {
	fake := newFakeServer(http.StatusOK, "agent-X")
	defer fake.close()

	agent, m := newTestAgent(t, fake.srv.URL+"/api/agents")

	require.NoError(t, agent.register(context.Background()))
	assert.Equal(t, "agent-X", m.Get().AgentID)

	// The identity survived to disk
	var onDisk Config
	require.NoError(t, config.LoadFile(m.Path(), &onDisk))
	assert.Equal(t, "agent-X", onDisk.AgentID)
}

func TestFailedRegistrationLeavesIDUnset(t *testing.T) {
	fake := newFakeServer(http.StatusInternalServerError, "agent-X")
	defer fake.close()

	agent, m := newTestAgent(t, fake.srv.URL+"/api/agents")

	err := agent.register(context.Background())
	require.Error(t, err)
	assert.Empty(t, m.Get().AgentID)

	var onDisk Config
	require.NoError(t, config.LoadFile(m.Path(), &onDisk))
	assert.Empty(t, onDisk.AgentID)
}

func TestNoHeartbeatWithoutAgentID(t *testing.T) {
	fake := newFakeServer(http.StatusServiceUnavailable, "agent-X")
	defer fake.close()

	agent, m := newTestAgent(t, fake.srv.URL+"/api/agents")

	// Several cycles while registration keeps failing
	for i := 0; i < 3; i++ {
		agent.runHeartbeatCycle(context.Background())
	}

	assert.Empty(t, m.Get().AgentID)
	assert.Equal(t, 0, fake.heartbeatCount())
}

func TestHeartbeatAfterRegistration(t *testing.T) {
	fake := newFakeServer(http.StatusOK, "agent-X")
	defer fake.close()

	agent, _ := newTestAgent(t, fake.srv.URL+"/api/agents")

	// First cycle registers, second heartbeats
	agent.runHeartbeatCycle(context.Background())
	agent.runHeartbeatCycle(context.Background())

	assert.Equal(t, 1, fake.heartbeatCount())

	status := agent.Status()
	assert.True(t, status.Registered)
	assert.NotNil(t, status.LastHeartbeat)
}

func TestHeartbeat404TriggersReRegistration(t *testing.T) {
	fake := newFakeServer(http.StatusOK, "agent-Y")
	defer fake.close()

	agent, m := newTestAgent(t, fake.srv.URL+"/api/agents")

	// Pretend we hold an identity the server has since forgotten
	require.NoError(t, m.SetAgentID("agent-stale"))

	agent.runHeartbeatCycle(context.Background())

	assert.Equal(t, "agent-Y", m.Get().AgentID)
	assert.Equal(t, 1, fake.registerCount())
}

func TestServerWhitelistBlocksRegistration(t *testing.T) {
	fake := newFakeServer(http.StatusOK, "agent-X")
	defer fake.close()

	agent, m := newTestAgent(t, fake.srv.URL+"/api/agents")
	require.NoError(t, m.Update(func(cfg *Config) {
		cfg.Security.ServerURLWhitelist = []string{"https://backup.example.com"}
	}))

	err := agent.register(context.Background())
	assert.ErrorIs(t, err, errServerNotWhitelisted)
	assert.Empty(t, m.Get().AgentID)
}

func TestCheckServerWhitelist(t *testing.T) {
	assert.NoError(t, checkServerWhitelist("http://anything", nil))
	assert.NoError(t, checkServerWhitelist("https://backup.example.com/api/agents",
		[]string{"http://localhost", "https://backup.example.com"}))
	assert.Error(t, checkServerWhitelist("http://rogue.example.com",
		[]string{"https://backup.example.com"}))
}
