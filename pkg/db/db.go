// Package db pkg/db/db.go provides SQLite storage for the central server.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// SQL statements for database initialization.
	createTablesSQL = `
	-- Registered agents
	CREATE TABLE IF NOT EXISTS agents (
		agent_id TEXT PRIMARY KEY,
		hostname TEXT NOT NULL UNIQUE,
		ip_address TEXT NOT NULL DEFAULT '',
		os TEXT NOT NULL DEFAULT '',
		agent_version TEXT NOT NULL DEFAULT '',
		enabled BOOLEAN NOT NULL DEFAULT 1,
		healthy BOOLEAN NOT NULL DEFAULT 1,
		first_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		config_hash TEXT NOT NULL DEFAULT ''
	);

	-- Server-side copy of agent configuration
	CREATE TABLE IF NOT EXISTS agent_configs (
		agent_id TEXT PRIMARY KEY,
		config TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (agent_id) REFERENCES agents(agent_id) ON DELETE CASCADE
	);

	-- Backup runs reported by agents
	CREATE TABLE IF NOT EXISTS backup_jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		agent_id TEXT NOT NULL,
		status TEXT NOT NULL,
		tool TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		size_bytes INTEGER NOT NULL DEFAULT 0,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP,
		logs TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (agent_id) REFERENCES agents(agent_id) ON DELETE CASCADE
	);

	-- System events (agent offline, backup failed, ...)
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		event_type TEXT NOT NULL,
		description TEXT NOT NULL,
		agent_id TEXT,
		priority TEXT NOT NULL DEFAULT 'medium',
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Host metrics samples
	CREATE TABLE IF NOT EXISTS agent_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		agent_id TEXT NOT NULL,
		cpu_percent REAL NOT NULL DEFAULT 0,
		memory_percent REAL NOT NULL DEFAULT 0,
		disk_read_bytes INTEGER NOT NULL DEFAULT 0,
		disk_write_bytes INTEGER NOT NULL DEFAULT 0,
		net_bytes_sent INTEGER NOT NULL DEFAULT 0,
		net_bytes_recv INTEGER NOT NULL DEFAULT 0,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (agent_id) REFERENCES agents(agent_id) ON DELETE CASCADE
	);

	-- Indexes for better query performance
	CREATE INDEX IF NOT EXISTS idx_backup_jobs_agent_time
		ON backup_jobs(agent_id, start_time);
	CREATE INDEX IF NOT EXISTS idx_backup_jobs_status
		ON backup_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_events_time
		ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_agent
		ON events(agent_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_agent_metrics_agent_time
		ON agent_metrics(agent_id, timestamp);
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	// Foreign keys go through the DSN so every pooled connection
	// enforces them, not just the one a PRAGMA ran on.
	sqlDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", dbPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}

// UpsertAgent registers an agent, keyed by hostname. A hostname that is
// already known keeps its agent_id; its address, OS and last_seen are
// refreshed. Health is left alone so an offline agent re-registering
// goes through the same recovery transition a heartbeat would.
// A new hostname gets a server-assigned UUID.
func (db *DB) UpsertAgent(agent *Agent) (*Agent, error) {
	existing, err := db.GetAgentByHostname(agent.Hostname)
	if err != nil && !errors.Is(err, ErrAgentNotFound) {
		return nil, err
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err := db.Exec(`
			UPDATE agents
			SET ip_address = ?, os = ?, agent_version = ?, last_seen = ?
			WHERE agent_id = ?
		`, agent.IPAddress, agent.OS, agent.AgentVersion, now, existing.AgentID)
		if err != nil {
			return nil, fmt.Errorf("%w agent: %w", errFailedToUpdate, err)
		}

		return db.GetAgent(existing.AgentID)
	}

	agent.AgentID = uuid.NewString()
	agent.Enabled = true
	agent.Healthy = true
	agent.FirstSeen = now
	agent.LastSeen = now

	_, err = db.Exec(`
		INSERT INTO agents (agent_id, hostname, ip_address, os, agent_version, enabled, healthy, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, 1, 1, ?, ?)
	`, agent.AgentID, agent.Hostname, agent.IPAddress, agent.OS, agent.AgentVersion, now, now)
	if err != nil {
		return nil, fmt.Errorf("%w agent: %w", errFailedToInsert, err)
	}

	return agent, nil
}

func (db *DB) GetAgent(agentID string) (*Agent, error) {
	const query = `
		SELECT agent_id, hostname, ip_address, os, agent_version, enabled, healthy, first_seen, last_seen, config_hash
		FROM agents
		WHERE agent_id = ?
	`

	return db.scanAgentRow(db.QueryRow(query, agentID))
}

func (db *DB) GetAgentByHostname(hostname string) (*Agent, error) {
	const query = `
		SELECT agent_id, hostname, ip_address, os, agent_version, enabled, healthy, first_seen, last_seen, config_hash
		FROM agents
		WHERE hostname = ?
	`

	return db.scanAgentRow(db.QueryRow(query, hostname))
}

func (*DB) scanAgentRow(row *sql.Row) (*Agent, error) {
	var a Agent

	err := row.Scan(
		&a.AgentID,
		&a.Hostname,
		&a.IPAddress,
		&a.OS,
		&a.AgentVersion,
		&a.Enabled,
		&a.Healthy,
		&a.FirstSeen,
		&a.LastSeen,
		&a.ConfigHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgentNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w agent: %w", errFailedToQuery, err)
	}

	return &a, nil
}

func (db *DB) ListAgents() ([]Agent, error) {
	const query = `
		SELECT agent_id, hostname, ip_address, os, agent_version, enabled, healthy, first_seen, last_seen, config_hash
		FROM agents
		ORDER BY hostname
	`

	rows, err := db.Query(query) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w agents: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var agents []Agent

	for rows.Next() {
		var a Agent
		if err := rows.Scan(
			&a.AgentID, &a.Hostname, &a.IPAddress, &a.OS, &a.AgentVersion,
			&a.Enabled, &a.Healthy, &a.FirstSeen, &a.LastSeen, &a.ConfigHash,
		); err != nil {
			return nil, fmt.Errorf("%w agent row: %w", errFailedToScan, err)
		}

		agents = append(agents, a)
	}

	return agents, nil
}

func (db *DB) UpdateAgentEnabled(agentID string, enabled bool) error {
	return db.execAgentUpdate(`UPDATE agents SET enabled = ? WHERE agent_id = ?`, enabled, agentID)
}

func (db *DB) UpdateAgentHeartbeat(agentID string, seen time.Time) error {
	return db.execAgentUpdate(`UPDATE agents SET last_seen = ? WHERE agent_id = ?`, seen.UTC(), agentID)
}

func (db *DB) UpdateAgentHealth(agentID string, healthy bool) error {
	return db.execAgentUpdate(`UPDATE agents SET healthy = ? WHERE agent_id = ?`, healthy, agentID)
}

func (db *DB) execAgentUpdate(query string, args ...interface{}) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w agent: %w", errFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAgentNotFound
	}

	return nil
}

// ListStaleAgents returns enabled agents whose last heartbeat is older
// than the threshold.
func (db *DB) ListStaleAgents(threshold time.Duration) ([]Agent, error) {
	const query = `
		SELECT agent_id, hostname, ip_address, os, agent_version, enabled, healthy, first_seen, last_seen, config_hash
		FROM agents
		WHERE enabled = 1 AND last_seen < ?
	`

	cutoff := time.Now().UTC().Add(-threshold)

	rows, err := db.Query(query, cutoff) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w stale agents: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var agents []Agent

	for rows.Next() {
		var a Agent
		if err := rows.Scan(
			&a.AgentID, &a.Hostname, &a.IPAddress, &a.OS, &a.AgentVersion,
			&a.Enabled, &a.Healthy, &a.FirstSeen, &a.LastSeen, &a.ConfigHash,
		); err != nil {
			return nil, fmt.Errorf("%w agent row: %w", errFailedToScan, err)
		}

		agents = append(agents, a)
	}

	return agents, nil
}

func (db *DB) GetAgentConfig(agentID string) (*AgentConfig, error) {
	const query = `
		SELECT agent_id, config, updated_at
		FROM agent_configs
		WHERE agent_id = ?
	`

	var cfg AgentConfig

	var raw string

	err := db.QueryRow(query, agentID).Scan(&cfg.AgentID, &raw, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgentNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w agent config: %w", errFailedToQuery, err)
	}

	cfg.Config = []byte(raw)

	return &cfg, nil
}

func (db *DB) SaveAgentConfig(cfg *AgentConfig) error {
	_, err := db.Exec(`
		INSERT INTO agent_configs (agent_id, config, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at
	`, cfg.AgentID, string(cfg.Config), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w agent config: %w", errFailedToInsert, err)
	}

	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed to close rows: %v", err)
	}
}
