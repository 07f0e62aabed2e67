package server

import (
	"sort"
	"time"

	"github.com/backupfleet/backupfleet/pkg/db"
)

const (
	slowBackupDuration = time.Hour
	offlineTipAfter    = time.Hour

	tipFailureRateLimit = 80
	tipSlowRateLimit    = 90
	tipFailedJobsLimit  = 3
	tipStorageLimit     = 90

	tipWindowDays = 7
)

// Tip is an actionable recommendation produced from fleet metrics.
type Tip struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    string        `json:"priority"`
	AgentID     string        `json:"agent_id,omitempty"`
	SystemWide  bool          `json:"system_wide,omitempty"`
	Solutions   []TipSolution `json:"solutions"`
	Resources   []TipResource `json:"resources"`
}

type TipSolution struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type TipResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// tipMetrics is the snapshot a catalog condition is evaluated against.
type tipMetrics struct {
	successRate         float64
	avgDurationSeconds  float64
	failedBackups       int
	totalBackups        int
	status              string
	offlineFor          time.Duration
	storageUsagePercent float64
}

type catalogTip struct {
	id        string
	title     string
	agentTip  bool
	applies   func(m *tipMetrics) bool
	solutions []TipSolution
	resources []TipResource
}

var tipCatalog = []catalogTip{
	{
		id:       "backup_slow_performance",
		title:    "Improve Slow Backup Performance",
		agentTip: true,
		applies: func(m *tipMetrics) bool {
			return m.avgDurationSeconds > slowBackupDuration.Seconds() &&
				m.successRate < tipSlowRateLimit
		},
		solutions: []TipSolution{
			{
				Title:       "Tune Exclusions",
				Description: "Configure exclusion patterns for temporary files, caches and downloads that do not need to be backed up",
				Priority:    "high",
			},
			{
				Title:       "Adjust Compression",
				Description: "Lower or disable compression for directories holding already compressed files such as images, videos and archives",
				Priority:    "medium",
			},
			{
				Title:       "Check Network Throughput",
				Description: "Test the network speed between the agent and its backup destination",
				Priority:    "medium",
			},
		},
		resources: []TipResource{
			{Title: "Optimization Guide", URL: "https://backup-system.docs/optimization"},
		},
	},
	{
		id:       "backup_high_failure_rate",
		title:    "Reduce Backup Failure Rate",
		agentTip: true,
		applies: func(m *tipMetrics) bool {
			return m.successRate < tipFailureRateLimit &&
				m.failedBackups > tipFailedJobsLimit
		},
		solutions: []TipSolution{
			{
				Title:       "Check Access Permissions",
				Description: "Make sure the agent service has read access to every source directory",
				Priority:    "critical",
			},
			{
				Title:       "Raise Timeouts",
				Description: "Increase the execution timeout for backups of large data volumes",
				Priority:    "high",
			},
			{
				Title:       "Check Disk Space",
				Description: "Verify there is enough free space on both the source and the backup destination",
				Priority:    "critical",
			},
		},
		resources: []TipResource{
			{Title: "Troubleshooting Guide", URL: "https://backup-system.docs/troubleshooting"},
		},
	},
	{
		id:       "agent_offline",
		title:    "Agent Offline for an Extended Period",
		agentTip: true,
		applies: func(m *tipMetrics) bool {
			return m.status == "offline" && m.offlineFor > offlineTipAfter
		},
		solutions: []TipSolution{
			{
				Title:       "Check the Agent Service",
				Description: "Restart the backup agent service on the machine",
				Priority:    "critical",
			},
			{
				Title:       "Check Network Connectivity",
				Description: "Verify the machine can reach the central server",
				Priority:    "high",
			},
			{
				Title:       "Check Firewall Rules",
				Description: "Make sure ports 9200 (API) and 8080 (web interface) are open",
				Priority:    "high",
			},
		},
		resources: []TipResource{
			{Title: "Agent Installation Manual", URL: "https://backup-system.docs/agent-installation"},
		},
	},
	{
		id:    "storage_low_space",
		title: "Storage Running Out of Space",
		applies: func(m *tipMetrics) bool {
			return m.storageUsagePercent > tipStorageLimit
		},
		solutions: []TipSolution{
			{
				Title:       "Grow Storage Capacity",
				Description: "Add storage to the server or migrate backups to external storage",
				Priority:    "critical",
			},
			{
				Title:       "Prune Old Backups",
				Description: "Configure retention policies so old backups are removed automatically",
				Priority:    "high",
			},
			{
				Title:       "Tune Deduplication",
				Description: "Enable or adjust data deduplication to reduce space usage",
				Priority:    "medium",
			},
		},
		resources: []TipResource{
			{Title: "Retention Policy Guide", URL: "https://backup-system.docs/retention-policies"},
		},
	},
}

var tipPriorityRank = map[string]int{
	"critical": 4,
	"high":     3,
	"medium":   2,
	"low":      1,
}

// GenerateAgentTips evaluates the catalog against one agent's recent
// activity and returns every tip whose condition holds.
func (s *Server) GenerateAgentTips(agentID string) ([]Tip, error) {
	stats, err := s.db.GetAgentStats(agentID, s.alertThreshold)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	jobs, err := s.db.ListBackupJobsSince(now.Add(-tipWindowDays*24*time.Hour), agentID)
	if err != nil {
		return nil, err
	}

	m := &tipMetrics{
		successRate:        stats.SuccessRate,
		avgDurationSeconds: avgJobDuration(jobs),
		failedBackups:      stats.FailedBackups,
		totalBackups:       stats.TotalBackups,
		status:             stats.Status,
	}
	if stats.Status == "offline" {
		m.offlineFor = now.Sub(stats.LastSeen)
	}

	tips := []Tip{}

	for i := range tipCatalog {
		entry := &tipCatalog[i]
		if !entry.agentTip || !entry.applies(m) {
			continue
		}

		tip := entry.build()
		tip.AgentID = agentID
		tip.Description = "Recommended actions to improve this agent"
		tips = append(tips, tip)
	}

	return tips, nil
}

// GenerateTips evaluates the catalog fleet-wide: system conditions
// first, then every agent, sorted by priority.
func (s *Server) GenerateTips() ([]Tip, error) {
	overview, err := s.db.GetOverview(s.alertThreshold)
	if err != nil {
		return nil, err
	}

	storage := SummarizeStorage(overview.TotalSizeBytes)
	m := &tipMetrics{storageUsagePercent: storage.UsagePercent}

	tips := []Tip{}

	for i := range tipCatalog {
		entry := &tipCatalog[i]
		if entry.agentTip || !entry.applies(m) {
			continue
		}

		tip := entry.build()
		tip.SystemWide = true
		tip.Description = "Recommended actions to improve system health"
		tips = append(tips, tip)
	}

	agents, err := s.db.ListAgents()
	if err != nil {
		return nil, err
	}

	for i := range agents {
		agentTips, err := s.GenerateAgentTips(agents[i].AgentID)
		if err != nil {
			return nil, err
		}

		tips = append(tips, agentTips...)
	}

	sort.SliceStable(tips, func(i, j int) bool {
		return tipPriorityRank[tips[i].Priority] > tipPriorityRank[tips[j].Priority]
	})

	return tips, nil
}

// build materializes a catalog entry. The tip's own priority is the
// highest priority among its solutions.
func (t *catalogTip) build() Tip {
	priority := "low"
	for _, sol := range t.solutions {
		if tipPriorityRank[sol.Priority] > tipPriorityRank[priority] {
			priority = sol.Priority
		}
	}

	return Tip{
		ID:        t.id,
		Title:     t.title,
		Priority:  priority,
		Solutions: t.solutions,
		Resources: t.resources,
	}
}

// avgJobDuration averages the wall time of completed jobs in seconds.
func avgJobDuration(jobs []db.BackupJob) float64 {
	var (
		sum   float64
		count int
	)

	for i := range jobs {
		job := &jobs[i]
		if job.EndTime == nil {
			continue
		}

		sum += job.EndTime.Sub(job.StartTime).Seconds()
		count++
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
