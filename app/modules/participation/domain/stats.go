package participationdomain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Entry is one ledger row with its target's resolved attributes, as fed to
// Aggregate.
type Entry struct {
	TargetID          uuid.UUID
	Name              string
	Year              int
	Status            Status
	Distance          float64
	Elevation         int
	FinishTime        *string
	FinishTimeSeconds *int
	CompletedAt       *time.Time
}

// StatusCounts partitions ledger rows by status.
type StatusCounts struct {
	Interested int `json:"interested"`
	Registered int `json:"registered"`
	Confirmed  int `json:"confirmed"`
	Completed  int `json:"completed"`
	DNF        int `json:"dnf"`
	DNS        int `json:"dns"`
}

// FastestRace is the completed row with the lowest finish time.
type FastestRace struct {
	TargetID          uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Year              int       `json:"year,omitempty"`
	FinishTime        string    `json:"finishTime"`
	FinishTimeSeconds int       `json:"finishTimeSeconds"`
}

// CompletedStats summarises the COMPLETED rows. AverageTime and FastestRace
// are nil when no completed row carries a time.
type CompletedStats struct {
	TotalCompleted int          `json:"totalCompleted"`
	TotalKm        float64      `json:"totalKm"`
	TotalElevation int          `json:"totalElevation"`
	AverageTime    *string      `json:"averageTime,omitempty"`
	FastestRace    *FastestRace `json:"fastestRace,omitempty"`
}

// Stats is the per-user rollup.
type Stats struct {
	TotalCompetitions int            `json:"totalCompetitions"`
	ByStatus          StatusCounts   `json:"byStatus"`
	CompletedStats    CompletedStats `json:"completedStats"`
}

// Aggregate builds a user's statistics from their ledger entries.
func Aggregate(entries []Entry) Stats {
	stats := Stats{TotalCompetitions: len(entries)}

	var (
		km          float64
		timedTotal  int
		timedCount  int
		fastest     *Entry
		fastestSecs int
	)

	for i := range entries {
		e := &entries[i]
		switch e.Status {
		case StatusInterested:
			stats.ByStatus.Interested++
		case StatusRegistered:
			stats.ByStatus.Registered++
		case StatusConfirmed:
			stats.ByStatus.Confirmed++
		case StatusCompleted:
			stats.ByStatus.Completed++
		case StatusDNF:
			stats.ByStatus.DNF++
		case StatusDNS:
			stats.ByStatus.DNS++
		}

		if e.Status != StatusCompleted {
			continue
		}
		stats.CompletedStats.TotalCompleted++
		km += e.Distance
		stats.CompletedStats.TotalElevation += e.Elevation

		if e.FinishTimeSeconds == nil || *e.FinishTimeSeconds <= 0 {
			continue
		}
		secs := *e.FinishTimeSeconds
		timedTotal += secs
		timedCount++
		if fastest == nil || secs < fastestSecs {
			fastest = e
			fastestSecs = secs
		}
	}

	stats.CompletedStats.TotalKm = math.Round(km*10) / 10

	if timedCount > 0 {
		avg := FormatTime(int(math.Round(float64(timedTotal) / float64(timedCount))))
		stats.CompletedStats.AverageTime = &avg
	}
	if fastest != nil {
		stats.CompletedStats.FastestRace = &FastestRace{
			TargetID:          fastest.TargetID,
			Name:              fastest.Name,
			Year:              fastest.Year,
			FinishTime:        FormatTime(fastestSecs),
			FinishTimeSeconds: fastestSecs,
		}
	}
	return stats
}
