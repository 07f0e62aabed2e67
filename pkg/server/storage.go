package server

import "github.com/backupfleet/backupfleet/pkg/db"

const (
	// Capacity is simulated at a fixed pool size until repository
	// backends report real numbers.
	storageCapacityGB = 1000

	growthWindowDays = 7
)

// StorageSummary describes the storage pool holding the fleet's backups.
type StorageSummary struct {
	CapacityGB   float64 `json:"capacity_gb"`
	UsedGB       float64 `json:"used_gb"`
	FreeGB       float64 `json:"free_gb"`
	UsagePercent float64 `json:"usage_percent"`
}

// SummarizeStorage derives pool usage from the total bytes backed up
// across the fleet.
func SummarizeStorage(totalSizeBytes int64) StorageSummary {
	used := round2(toGB(totalSizeBytes))

	return StorageSummary{
		CapacityGB:   storageCapacityGB,
		UsedGB:       used,
		FreeGB:       round2(storageCapacityGB - used),
		UsagePercent: round2(used / storageCapacityGB * 100),
	}
}

// DailyGrowthGB averages the data written per day over the last week of
// trend points.
func DailyGrowthGB(trends []db.TrendPoint) float64 {
	var total int64
	for _, p := range trends {
		total += p.TotalSizeBytes
	}

	return round2(toGB(total) / growthWindowDays)
}
