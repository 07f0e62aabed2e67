package server

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/backupfleet/backupfleet/pkg/db"
)

const (
	maxDetailedBackups = 50
	topSourceCount     = 5

	bytesPerGB = 1 << 30
)

// BackupReport summarizes backup activity over a period.
type BackupReport struct {
	Period          string               `json:"period"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Summary         BackupReportSummary  `json:"summary"`
	ToolBreakdown   map[string]ToolStats `json:"tool_breakdown"`
	TopSources      []SourceStats        `json:"top_sources"`
	DetailedBackups []BackupDetail       `json:"detailed_backups"`
}

type BackupReportSummary struct {
	TotalBackups       int     `json:"total_backups"`
	SuccessBackups     int     `json:"success_backups"`
	FailedBackups      int     `json:"failed_backups"`
	RunningBackups     int     `json:"running_backups"`
	SuccessRate        float64 `json:"success_rate"`
	TotalSizeGB        float64 `json:"total_size_gb"`
	AvgSizeGB          float64 `json:"avg_size_gb"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}

type ToolStats struct {
	Count     int   `json:"count"`
	Success   int   `json:"success"`
	Failed    int   `json:"failed"`
	SizeBytes int64 `json:"size_bytes"`
}

type SourceStats struct {
	Source      string  `json:"source"`
	BackupCount int     `json:"backup_count"`
	TotalSizeGB float64 `json:"total_size_gb"`
}

type BackupDetail struct {
	ID              int64      `json:"id"`
	AgentID         string     `json:"agent_id"`
	Status          string     `json:"status"`
	Tool            string     `json:"tool"`
	Source          string     `json:"source"`
	Destination     string     `json:"destination"`
	SizeGB          float64    `json:"size_gb"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds *float64   `json:"duration_seconds,omitempty"`
}

// HealthReport summarizes the health of every agent in the fleet.
type HealthReport struct {
	Period        string        `json:"period"`
	GeneratedAt   time.Time     `json:"generated_at"`
	TotalAgents   int           `json:"total_agents"`
	OnlineAgents  int           `json:"online_agents"`
	OfflineAgents int           `json:"offline_agents"`
	Agents        []AgentHealth `json:"agents"`
}

type AgentHealth struct {
	AgentID     string        `json:"agent_id"`
	Hostname    string        `json:"hostname"`
	IPAddress   string        `json:"ip_address"`
	OS          string        `json:"os"`
	Status      string        `json:"status"`
	LastSeen    time.Time     `json:"last_seen"`
	Stats       db.AgentStats `json:"stats"`
	Issues      []string      `json:"issues"`
	HealthScore int           `json:"health_score"`
}

// GenerateBackupReport builds a backup activity report for the last
// `days` days, optionally narrowed to one agent. Returns nil when no
// backups fall in the period.
func (s *Server) GenerateBackupReport(agentID string, days int) (*BackupReport, error) {
	if days <= 0 {
		days = 7
	}

	now := time.Now().UTC()
	start := now.Add(-time.Duration(days) * 24 * time.Hour)

	jobs, err := s.db.ListBackupJobsSince(start, agentID)
	if err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		return nil, nil
	}

	report := &BackupReport{
		Period:        fmt.Sprintf("%s to %s", start.Format("2006-01-02"), now.Format("2006-01-02")),
		GeneratedAt:   now,
		ToolBreakdown: make(map[string]ToolStats),
	}

	var (
		totalSize   int64
		durations   []float64
		sourceSizes = make(map[string]*SourceStats)
	)

	for i := range jobs {
		job := &jobs[i]

		switch job.Status {
		case db.BackupStatusSuccess:
			report.Summary.SuccessBackups++
		case db.BackupStatusFailed:
			report.Summary.FailedBackups++
		case db.BackupStatusRunning:
			report.Summary.RunningBackups++
		}

		totalSize += job.SizeBytes

		if job.EndTime != nil {
			durations = append(durations, job.EndTime.Sub(job.StartTime).Seconds())
		}

		tool := report.ToolBreakdown[job.Tool]
		tool.Count++

		switch job.Status {
		case db.BackupStatusSuccess:
			tool.Success++
			tool.SizeBytes += job.SizeBytes
		case db.BackupStatusFailed:
			tool.Failed++
		}

		report.ToolBreakdown[job.Tool] = tool

		if job.Status == db.BackupStatusSuccess && job.SizeBytes > 0 {
			src, ok := sourceSizes[job.Source]
			if !ok {
				src = &SourceStats{Source: job.Source}
				sourceSizes[job.Source] = src
			}

			src.BackupCount++
			src.TotalSizeGB += toGB(job.SizeBytes)
		}
	}

	report.Summary.TotalBackups = len(jobs)
	report.Summary.SuccessRate = round2(float64(report.Summary.SuccessBackups) / float64(len(jobs)) * 100)
	report.Summary.TotalSizeGB = round2(toGB(totalSize))
	report.Summary.AvgSizeGB = round2(toGB(totalSize) / float64(len(jobs)))

	if len(durations) > 0 {
		var sum float64
		for _, d := range durations {
			sum += d
		}

		report.Summary.AvgDurationSeconds = round2(sum / float64(len(durations)))
	}

	for _, src := range sourceSizes {
		src.TotalSizeGB = round2(src.TotalSizeGB)
		report.TopSources = append(report.TopSources, *src)
	}

	sort.Slice(report.TopSources, func(i, j int) bool {
		return report.TopSources[i].TotalSizeGB > report.TopSources[j].TotalSizeGB
	})

	if len(report.TopSources) > topSourceCount {
		report.TopSources = report.TopSources[:topSourceCount]
	}

	detailed := jobs
	if len(detailed) > maxDetailedBackups {
		detailed = detailed[:maxDetailedBackups]
	}

	for i := range detailed {
		report.DetailedBackups = append(report.DetailedBackups, backupDetail(&detailed[i]))
	}

	return report, nil
}

func backupDetail(job *db.BackupJob) BackupDetail {
	d := BackupDetail{
		ID:          job.ID,
		AgentID:     job.AgentID,
		Status:      job.Status,
		Tool:        job.Tool,
		Source:      job.Source,
		Destination: job.Destination,
		SizeGB:      round2(toGB(job.SizeBytes)),
		StartTime:   job.StartTime,
		EndTime:     job.EndTime,
	}

	if job.EndTime != nil {
		secs := job.EndTime.Sub(job.StartTime).Seconds()
		d.DurationSeconds = &secs
	}

	return d
}

// GenerateHealthReport builds the per-agent health view with a 0-100
// score per agent.
func (s *Server) GenerateHealthReport() (*HealthReport, error) {
	agents, err := s.db.ListAgents()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	report := &HealthReport{
		Period:      fmt.Sprintf("%s to %s", now.Add(-7*24*time.Hour).Format("2006-01-02"), now.Format("2006-01-02")),
		GeneratedAt: now,
		TotalAgents: len(agents),
		Agents:      make([]AgentHealth, 0, len(agents)),
	}

	for i := range agents {
		agent := &agents[i]

		stats, err := s.db.GetAgentStats(agent.AgentID, s.alertThreshold)
		if err != nil {
			return nil, err
		}

		online := stats.Status == "online"
		if online {
			report.OnlineAgents++
		} else {
			report.OfflineAgents++
		}

		issues := agentIssues(agent, stats, now)

		report.Agents = append(report.Agents, AgentHealth{
			AgentID:     agent.AgentID,
			Hostname:    agent.Hostname,
			IPAddress:   agent.IPAddress,
			OS:          agent.OS,
			Status:      stats.Status,
			LastSeen:    agent.LastSeen,
			Stats:       *stats,
			Issues:      issues,
			HealthScore: healthScore(stats, issues, online),
		})
	}

	return report, nil
}

func agentIssues(agent *db.Agent, stats *db.AgentStats, now time.Time) []string {
	issues := []string{}

	if stats.TotalBackups > 0 && float64(stats.FailedBackups) > float64(stats.TotalBackups)*0.3 {
		issues = append(issues, "high_failure_rate")
	}

	if agent.LastSeen.Before(now.Add(-time.Hour)) {
		issues = append(issues, "not_reporting")
	}

	if stats.TotalBackups > 0 && stats.SuccessRate < 80 {
		issues = append(issues, "low_success_rate")
	}

	return issues
}

// healthScore scores an agent 0-100: penalties per issue, a graduated
// penalty for success rates below 80%, and a bonus for being online.
func healthScore(stats *db.AgentStats, issues []string, online bool) int {
	score := 100.0

	for _, issue := range issues {
		switch issue {
		case "high_failure_rate":
			score -= 30
		case "not_reporting":
			score -= 40
		case "low_success_rate":
			score -= 20
		}
	}

	if stats.TotalBackups > 0 && stats.SuccessRate < 80 {
		score -= (80 - stats.SuccessRate) * 0.5
	}

	if online {
		score += 10
	}

	return int(math.Max(0, math.Min(100, score)))
}

func toGB(bytes int64) float64 {
	return float64(bytes) / bytesPerGB
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
