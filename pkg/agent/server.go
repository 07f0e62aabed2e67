package agent

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/backupfleet/backupfleet/pkg/httpx"
)

// WebServer is the agent's local inspection API. With web_local_only
// set it binds to loopback; otherwise it listens on all interfaces
// behind an IP allowlist.
type WebServer struct {
	agent  *Agent
	log    *logrus.Logger
	router *mux.Router
}

func NewWebServer(agent *Agent, log *logrus.Logger) *WebServer {
	s := &WebServer{
		agent:  agent,
		log:    log,
		router: mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

func (s *WebServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	cfg := s.agent.cfg.Get()
	if !cfg.Security.WebLocalOnly {
		s.router.Use(httpx.IPAllowlistMiddleware(s.log, cfg.Security.AllowedIPs))
	}

	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/config", s.getConfig).Methods("GET")
	s.router.HandleFunc("/api/register", s.triggerRegister).Methods("POST")
}

// ListenAddr returns the bind address derived from the security
// settings.
func (s *WebServer) ListenAddr() string {
	cfg := s.agent.cfg.Get()

	if cfg.Security.WebLocalOnly {
		return fmt.Sprintf("127.0.0.1:%d", cfg.WebPort)
	}

	return fmt.Sprintf(":%d", cfg.WebPort)
}

func (s *WebServer) Router() http.Handler {
	return s.router
}

func (s *WebServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, s.agent.Status())
}

// getConfig returns the live configuration with repository passwords
// redacted.
func (s *WebServer) getConfig(w http.ResponseWriter, _ *http.Request) {
	cfg := s.agent.cfg.Get()

	redacted := make([]Repository, len(cfg.Repositories))
	copy(redacted, cfg.Repositories)

	for i := range redacted {
		if redacted[i].Password != "" {
			redacted[i].Password = "********"
		}
	}

	cfg.Repositories = redacted

	httpx.WriteJSON(w, http.StatusOK, &cfg)
}

// triggerRegister forces an immediate registration attempt.
func (s *WebServer) triggerRegister(w http.ResponseWriter, r *http.Request) {
	if err := s.agent.register(r.Context()); err != nil {
		s.log.WithError(err).Warn("Manual registration failed")
		httpx.WriteError(w, http.StatusBadGateway, err.Error())

		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "registered",
		"agent_id": s.agent.cfg.Get().AgentID,
	})
}
