package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/httpx"
	"github.com/backupfleet/backupfleet/pkg/server"
)

func (s *APIServer) registerAgent(w http.ResponseWriter, r *http.Request) {
	if !s.registerLimiter.Allow() {
		httpx.WriteError(w, http.StatusTooManyRequests, "too many registration attempts")
		return
	}

	var req server.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IPAddress == "" {
		req.IPAddress = remoteIP(r)
	}

	resp, err := s.core.RegisterAgent(r.Context(), &req)
	if err != nil {
		if errors.Is(err, server.ErrInvalidRequest) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.log.WithError(err).Error("Registration failed")
		httpx.WriteError(w, http.StatusInternalServerError, "registration failed")

		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *APIServer) heartbeat(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var req server.HeartbeatRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := s.core.Heartbeat(r.Context(), agentID, &req); err != nil {
		if errors.Is(err, db.ErrAgentNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "agent not found")
			return
		}

		s.log.WithError(err).WithField("agent_id", agentID).Error("Heartbeat failed")
		httpx.WriteError(w, http.StatusInternalServerError, "heartbeat failed")

		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *APIServer) reportMetrics(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var sample db.MetricsSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.core.ReportMetrics(r.Context(), agentID, &sample); err != nil {
		if errors.Is(err, db.ErrAgentNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "agent not found")
			return
		}

		s.log.WithError(err).WithField("agent_id", agentID).Error("Metrics report failed")
		httpx.WriteError(w, http.StatusInternalServerError, "metrics report failed")

		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *APIServer) reportBackup(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var job db.BackupJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.core.ReportBackup(r.Context(), agentID, &job); err != nil {
		switch {
		case errors.Is(err, db.ErrAgentNotFound):
			httpx.WriteError(w, http.StatusNotFound, "agent not found")
		case errors.Is(err, server.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			s.log.WithError(err).WithField("agent_id", agentID).Error("Backup report failed")
			httpx.WriteError(w, http.StatusInternalServerError, "backup report failed")
		}

		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
