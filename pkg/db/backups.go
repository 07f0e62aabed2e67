package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertBackupJob stores a backup run reported by an agent.
func (db *DB) InsertBackupJob(job *BackupJob) (int64, error) {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	result, err := db.Exec(`
		INSERT INTO backup_jobs
			(agent_id, status, tool, source, destination, size_bytes, start_time, end_time, logs, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.AgentID, job.Status, job.Tool, job.Source, job.Destination,
		job.SizeBytes, job.StartTime.UTC(), nullableTime(job.EndTime), job.Logs, job.ErrorMessage, job.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w backup job: %w", errFailedToInsert, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	job.ID = id

	return id, nil
}

// ListBackupJobs returns the most recent backup jobs across all agents.
func (db *DB) ListBackupJobs(limit int) ([]BackupJob, error) {
	const query = `
		SELECT id, agent_id, status, tool, source, destination, size_bytes, start_time, end_time, logs, error_message, created_at
		FROM backup_jobs
		ORDER BY start_time DESC
		LIMIT ?
	`

	return db.queryBackupJobs(query, limit)
}

// ListAgentBackupJobs returns the most recent backup jobs for one agent.
func (db *DB) ListAgentBackupJobs(agentID string, limit int) ([]BackupJob, error) {
	const query = `
		SELECT id, agent_id, status, tool, source, destination, size_bytes, start_time, end_time, logs, error_message, created_at
		FROM backup_jobs
		WHERE agent_id = ?
		ORDER BY start_time DESC
		LIMIT ?
	`

	return db.queryBackupJobs(query, agentID, limit)
}

// ListBackupJobsSince returns jobs started at or after the given time,
// optionally filtered to one agent.
func (db *DB) ListBackupJobsSince(since time.Time, agentID string) ([]BackupJob, error) {
	if agentID != "" {
		const query = `
			SELECT id, agent_id, status, tool, source, destination, size_bytes, start_time, end_time, logs, error_message, created_at
			FROM backup_jobs
			WHERE start_time >= ? AND agent_id = ?
			ORDER BY start_time DESC
		`

		return db.queryBackupJobs(query, since.UTC(), agentID)
	}

	const query = `
		SELECT id, agent_id, status, tool, source, destination, size_bytes, start_time, end_time, logs, error_message, created_at
		FROM backup_jobs
		WHERE start_time >= ?
		ORDER BY start_time DESC
	`

	return db.queryBackupJobs(query, since.UTC())
}

func (db *DB) queryBackupJobs(query string, args ...interface{}) ([]BackupJob, error) {
	rows, err := db.Query(query, args...) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w backup jobs: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var jobs []BackupJob

	for rows.Next() {
		var j BackupJob

		var end sql.NullTime

		if err := rows.Scan(
			&j.ID, &j.AgentID, &j.Status, &j.Tool, &j.Source, &j.Destination,
			&j.SizeBytes, &j.StartTime, &end, &j.Logs, &j.ErrorMessage, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w backup job row: %w", errFailedToScan, err)
		}

		if end.Valid {
			t := end.Time
			j.EndTime = &t
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}

	return t.UTC()
}
