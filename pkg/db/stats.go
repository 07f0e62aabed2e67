package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
)

// GetOverview aggregates the counters behind the dashboard stats cards.
func (db *DB) GetOverview(onlineThreshold time.Duration) (*Overview, error) {
	var o Overview

	cutoff := time.Now().UTC().Add(-onlineThreshold)

	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN last_seen >= ? THEN 1 ELSE 0 END), 0)
		FROM agents
	`, cutoff).Scan(&o.TotalAgents, &o.OnlineAgents)
	if err != nil {
		return nil, fmt.Errorf("%w agent counts: %w", errFailedToQuery, err)
	}

	err = db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'running' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(size_bytes), 0)
		FROM backup_jobs
	`).Scan(&o.TotalBackups, &o.BackupSummary.Success, &o.BackupSummary.Failed,
		&o.BackupSummary.Running, &o.TotalSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("%w backup counts: %w", errFailedToQuery, err)
	}

	o.SuccessRate = successRate(o.BackupSummary.Success, o.TotalBackups)

	return &o, nil
}

// GetBackupTrends returns per-day backup activity for the last N days.
func (db *DB) GetBackupTrends(days int) ([]TrendPoint, error) {
	const query = `
		SELECT
			DATE(start_time) as date,
			COUNT(*),
			SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END),
			COALESCE(SUM(size_bytes), 0),
			COALESCE(AVG(strftime('%s', end_time) - strftime('%s', start_time)), 0)
		FROM backup_jobs
		WHERE start_time >= ?
		GROUP BY DATE(start_time)
		ORDER BY date
	`

	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := db.Query(query, since) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w backup trends: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var trends []TrendPoint

	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.TotalBackups, &p.SuccessBackups,
			&p.FailedBackups, &p.TotalSizeBytes, &p.AvgDurationSeconds); err != nil {
			return nil, fmt.Errorf("%w trend row: %w", errFailedToScan, err)
		}

		trends = append(trends, p)
	}

	return trends, nil
}

// GetAgentStats summarizes one agent's backup history and liveness.
func (db *DB) GetAgentStats(agentID string, onlineThreshold time.Duration) (*AgentStats, error) {
	agent, err := db.GetAgent(agentID)
	if err != nil {
		return nil, err
	}

	stats := &AgentStats{
		AgentID:  agent.AgentID,
		Hostname: agent.Hostname,
		LastSeen: agent.LastSeen,
		Status:   "offline",
	}

	if time.Since(agent.LastSeen) <= onlineThreshold {
		stats.Status = "online"
	}

	err = db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0)
		FROM backup_jobs
		WHERE agent_id = ?
	`, agentID).Scan(&stats.TotalBackups, &stats.SuccessBackups, &stats.FailedBackups)
	if err != nil {
		return nil, fmt.Errorf("%w agent backup counts: %w", errFailedToQuery, err)
	}

	stats.SuccessRate = successRate(stats.SuccessBackups, stats.TotalBackups)

	var last sql.NullTime

	err = db.QueryRow(`
		SELECT MAX(start_time) FROM backup_jobs WHERE agent_id = ?
	`, agentID).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w last backup: %w", errFailedToQuery, err)
	}

	if last.Valid {
		t := last.Time
		stats.LastBackup = &t
	}

	return stats, nil
}

func successRate(success, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(success)/float64(total)*10000) / 100
}
