package db

import (
	"fmt"
	"log"
	"time"
)

// InsertEvent stores a system event.
func (db *DB) InsertEvent(ev *Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	result, err := db.Exec(`
		INSERT INTO events (category, event_type, description, agent_id, priority, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.Category, ev.EventType, ev.Description, ev.AgentID, ev.Priority, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("%w event: %w", errFailedToInsert, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		ev.ID = id
	}

	return nil
}

// ListEvents returns events matching the filter, newest first.
func (db *DB) ListEvents(filter EventFilter) ([]Event, error) {
	query := `
		SELECT id, category, event_type, description, COALESCE(agent_id, ''), priority, timestamp
		FROM events
		WHERE 1=1
	`

	var args []interface{}

	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}

	if filter.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filter.Priority)
	}

	if filter.AgentID != "" {
		query += " AND agent_id = ?"
		args = append(args, filter.AgentID)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query, args...) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w events: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var events []Event

	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Category, &ev.EventType, &ev.Description,
			&ev.AgentID, &ev.Priority, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("%w event row: %w", errFailedToScan, err)
		}

		events = append(events, ev)
	}

	return events, nil
}

// InsertMetrics stores a host metrics sample.
func (db *DB) InsertMetrics(sample *MetricsSample) error {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now().UTC()
	}

	_, err := db.Exec(`
		INSERT INTO agent_metrics
			(agent_id, cpu_percent, memory_percent, disk_read_bytes, disk_write_bytes, net_bytes_sent, net_bytes_recv, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sample.AgentID, sample.CPUPercent, sample.MemoryPercent,
		sample.DiskReadBytes, sample.DiskWriteBytes, sample.NetBytesSent, sample.NetBytesRecv, sample.Timestamp)
	if err != nil {
		return fmt.Errorf("%w metrics: %w", errFailedToInsert, err)
	}

	return nil
}

// GetAgentMetrics returns samples for one agent within [start, end].
func (db *DB) GetAgentMetrics(agentID string, start, end time.Time) ([]MetricsSample, error) {
	const query = `
		SELECT agent_id, cpu_percent, memory_percent, disk_read_bytes, disk_write_bytes, net_bytes_sent, net_bytes_recv, timestamp
		FROM agent_metrics
		WHERE agent_id = ? AND timestamp BETWEEN ? AND ?
		ORDER BY timestamp
	`

	rows, err := db.Query(query, agentID, start.UTC(), end.UTC()) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w agent metrics: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var samples []MetricsSample

	for rows.Next() {
		var s MetricsSample
		if err := rows.Scan(&s.AgentID, &s.CPUPercent, &s.MemoryPercent,
			&s.DiskReadBytes, &s.DiskWriteBytes, &s.NetBytesSent, &s.NetBytesRecv, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("%w metrics row: %w", errFailedToScan, err)
		}

		samples = append(samples, s)
	}

	return samples, nil
}

// CleanOldData removes events and metrics older than the retention period.
// Backup jobs are kept; they are the system of record.
func (db *DB) CleanOldData(retentionPeriod time.Duration) error {
	cutoff := time.Now().UTC().Add(-retentionPeriod)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("failed to rollback: %v", rbErr)
			}

			return
		}

		err = tx.Commit()
	}()

	if _, err = tx.Exec("DELETE FROM events WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("%w events: %w", errFailedToClean, err)
	}

	if _, err = tx.Exec("DELETE FROM agent_metrics WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("%w agent metrics: %w", errFailedToClean, err)
	}

	return err
}
