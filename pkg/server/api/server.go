package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/httpx"
)

const defaultOnlineThreshold = 15 * time.Minute

// Config tunes the HTTP layer.
type Config struct {
	// OnlineThreshold is how recently an agent must have been seen to
	// count as online in dashboard views.
	OnlineThreshold time.Duration

	// StaticDir, when set, is served at / for the dashboard frontend.
	StaticDir string
}

// APIServer exposes the agent-facing and dashboard REST endpoints.
type APIServer struct {
	core   CoreService
	db     db.Service
	log    *logrus.Logger
	router *mux.Router

	onlineThreshold time.Duration
	staticDir       string

	// registerLimiter protects the unauthenticated registration
	// endpoint from runaway clients.
	registerLimiter *rate.Limiter
	upgrader        websocket.Upgrader
}

func NewAPIServer(core CoreService, database db.Service, log *logrus.Logger, cfg Config) *APIServer {
	if cfg.OnlineThreshold <= 0 {
		cfg.OnlineThreshold = defaultOnlineThreshold
	}

	s := &APIServer{
		core:            core,
		db:              database,
		log:             log,
		router:          mux.NewRouter(),
		onlineThreshold: cfg.OnlineThreshold,
		staticDir:       cfg.StaticDir,
		registerLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	// Agent-facing endpoints
	s.router.HandleFunc("/api/agents/register", s.registerAgent).Methods("POST")
	s.router.HandleFunc("/api/agents/heartbeat/{id}", s.heartbeat).Methods("POST")
	s.router.HandleFunc("/api/agents/metrics/{id}", s.reportMetrics).Methods("POST")
	s.router.HandleFunc("/api/agents/backup/{id}", s.reportBackup).Methods("POST")

	// Dashboard endpoints
	s.router.HandleFunc("/api/dashboard", s.getDashboard).Methods("GET")
	s.router.HandleFunc("/api/agents", s.getAgents).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}", s.getAgent).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}", s.updateAgent).Methods("PUT")
	s.router.HandleFunc("/api/agents/{id}/stats", s.getAgentStats).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}/backups", s.getAgentBackups).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}/config", s.getAgentConfig).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}/metrics", s.getAgentMetrics).Methods("GET")
	s.router.HandleFunc("/api/agents/{id}/tips", s.getAgentTips).Methods("GET")
	s.router.HandleFunc("/api/tips", s.getTips).Methods("GET")
	s.router.HandleFunc("/api/backups", s.getBackups).Methods("GET")
	s.router.HandleFunc("/api/events", s.getEvents).Methods("GET")
	s.router.HandleFunc("/api/reports/backup", s.getBackupReport).Methods("GET")
	s.router.HandleFunc("/api/reports/health", s.getHealthReport).Methods("GET")
	s.router.HandleFunc("/api/ws", s.streamEvents)
	s.router.HandleFunc("/health", s.getHealth).Methods("GET")

	if s.staticDir != "" {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
	}
}

// Router returns the configured HTTP handler.
func (s *APIServer) Router() http.Handler {
	return s.router
}

func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
