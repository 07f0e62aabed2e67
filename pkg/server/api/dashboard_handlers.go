package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/httpx"
	"github.com/backupfleet/backupfleet/pkg/server"
)

const (
	defaultBackupLimit = 20
	maxBackupLimit     = 500

	defaultEventLimit = 100

	defaultReportDays = 7
	maxReportDays     = 365

	defaultTrendDays = 7
)

// DashboardResponse is the aggregate payload behind the dashboard's
// landing page.
type DashboardResponse struct {
	Overview      *db.Overview          `json:"overview"`
	Trends        []db.TrendPoint       `json:"trends"`
	RecentBackups []db.BackupJob        `json:"recent_backups"`
	RecentEvents  []db.Event            `json:"recent_events"`
	TotalSizeGB   float64               `json:"total_size_gb"`
	DailyGrowthGB float64               `json:"daily_growth_gb"`
	Storage       server.StorageSummary `json:"storage"`
}

// UpdateAgentRequest is the PUT /api/agents/{id} body. Absent fields
// are left unchanged.
type UpdateAgentRequest struct {
	Enabled *bool           `json:"enabled,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
}

func (s *APIServer) getDashboard(w http.ResponseWriter, _ *http.Request) {
	overview, err := s.db.GetOverview(s.onlineThreshold)
	if err != nil {
		s.serverError(w, err, "Failed to load overview")
		return
	}

	trends, err := s.db.GetBackupTrends(defaultTrendDays)
	if err != nil {
		s.serverError(w, err, "Failed to load trends")
		return
	}

	backups, err := s.db.ListBackupJobs(defaultBackupLimit)
	if err != nil {
		s.serverError(w, err, "Failed to load recent backups")
		return
	}

	events, err := s.db.ListEvents(db.EventFilter{Limit: defaultEventLimit})
	if err != nil {
		s.serverError(w, err, "Failed to load recent events")
		return
	}

	storage := server.SummarizeStorage(overview.TotalSizeBytes)

	httpx.WriteJSON(w, http.StatusOK, &DashboardResponse{
		Overview:      overview,
		Trends:        trends,
		RecentBackups: backups,
		RecentEvents:  events,
		TotalSizeGB:   storage.UsedGB,
		DailyGrowthGB: server.DailyGrowthGB(trends),
		Storage:       storage,
	})
}

func (s *APIServer) getAgents(w http.ResponseWriter, _ *http.Request) {
	agents, err := s.db.ListAgents()
	if err != nil {
		s.serverError(w, err, "Failed to list agents")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agents)
}

func (s *APIServer) getAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.db.GetAgent(mux.Vars(r)["id"])
	if err != nil {
		s.agentError(w, err, "Failed to load agent")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agent)
}

func (s *APIServer) updateAgent(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var req UpdateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Config != nil && !json.Valid(req.Config) {
		httpx.WriteError(w, http.StatusBadRequest, "config must be valid JSON")
		return
	}

	// Resolve the agent before touching anything so an unknown ID
	// answers 404 without leaving partial writes behind.
	if _, err := s.db.GetAgent(agentID); err != nil {
		s.agentError(w, err, "Failed to load agent")
		return
	}

	if req.Enabled != nil {
		if err := s.db.UpdateAgentEnabled(agentID, *req.Enabled); err != nil {
			s.agentError(w, err, "Failed to update agent")
			return
		}
	}

	if req.Config != nil {
		err := s.db.SaveAgentConfig(&db.AgentConfig{
			AgentID: agentID,
			Config:  req.Config,
		})
		if err != nil {
			s.agentError(w, err, "Failed to save agent config")
			return
		}
	}

	agent, err := s.db.GetAgent(agentID)
	if err != nil {
		s.agentError(w, err, "Failed to load agent")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agent)
}

func (s *APIServer) getAgentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetAgentStats(mux.Vars(r)["id"], s.onlineThreshold)
	if err != nil {
		s.agentError(w, err, "Failed to load agent stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, stats)
}

func (s *APIServer) getAgentBackups(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.db.ListAgentBackupJobs(mux.Vars(r)["id"], queryLimit(r, defaultBackupLimit))
	if err != nil {
		s.serverError(w, err, "Failed to list agent backups")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, jobs)
}

func (s *APIServer) getAgentConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.db.GetAgentConfig(mux.Vars(r)["id"])
	if err != nil {
		s.agentError(w, err, "Failed to load agent config")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cfg)
}

func (s *APIServer) getAgentMetrics(w http.ResponseWriter, r *http.Request) {
	end := time.Now().UTC()
	start := end.Add(-24 * time.Hour)

	if v := r.URL.Query().Get("hours"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			start = end.Add(-time.Duration(hours) * time.Hour)
		}
	}

	samples, err := s.db.GetAgentMetrics(mux.Vars(r)["id"], start, end)
	if err != nil {
		s.serverError(w, err, "Failed to load agent metrics")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, samples)
}

func (s *APIServer) getBackups(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.db.ListBackupJobs(queryLimit(r, defaultBackupLimit))
	if err != nil {
		s.serverError(w, err, "Failed to list backups")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, jobs)
}

func (s *APIServer) getEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := db.EventFilter{
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		AgentID:  q.Get("agent_id"),
		Limit:    queryLimit(r, defaultEventLimit),
	}

	if v := q.Get("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			filter.Since = time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
		}
	}

	events, err := s.db.ListEvents(filter)
	if err != nil {
		s.serverError(w, err, "Failed to list events")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, events)
}

func (s *APIServer) getBackupReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days := defaultReportDays
	if v := q.Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > maxReportDays {
			httpx.WriteError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}

		days = parsed
	}

	report, err := s.core.GenerateBackupReport(q.Get("agent_id"), days)
	if err != nil {
		s.serverError(w, err, "Failed to generate backup report")
		return
	}

	if report == nil {
		httpx.WriteError(w, http.StatusNotFound, "no backups in period")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, report)
}

func (s *APIServer) getAgentTips(w http.ResponseWriter, r *http.Request) {
	tips, err := s.core.GenerateAgentTips(mux.Vars(r)["id"])
	if err != nil {
		s.agentError(w, err, "Failed to generate agent tips")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tips)
}

func (s *APIServer) getTips(w http.ResponseWriter, _ *http.Request) {
	tips, err := s.core.GenerateTips()
	if err != nil {
		s.serverError(w, err, "Failed to generate tips")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tips)
}

func (s *APIServer) getHealthReport(w http.ResponseWriter, _ *http.Request) {
	report, err := s.core.GenerateHealthReport()
	if err != nil {
		s.serverError(w, err, "Failed to generate health report")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, report)
}

func (s *APIServer) serverError(w http.ResponseWriter, err error, msg string) {
	s.log.WithError(err).Error(msg)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

// agentError maps db.ErrAgentNotFound to 404, everything else to 500.
func (s *APIServer) agentError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, db.ErrAgentNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "agent not found")
		return
	}

	s.serverError(w, err, msg)
}

func queryLimit(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}

	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return def
	}

	if limit > maxBackupLimit {
		return maxBackupLimit
	}

	return limit
}
