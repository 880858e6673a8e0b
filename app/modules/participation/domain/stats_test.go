package participationdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAggregateExample(t *testing.T) {
	entries := []Entry{
		{Name: "UTMB", Status: StatusCompleted, Distance: 171, Elevation: 10000},
		{Name: "Lavaredo", Status: StatusCompleted, Distance: 125, Elevation: 5800},
		{Name: "Western States", Status: StatusDNF, Distance: 161},
	}

	got := Aggregate(entries)

	assert.Equal(t, 3, got.TotalCompetitions)
	assert.Equal(t, 2, got.CompletedStats.TotalCompleted)
	assert.Equal(t, 296.0, got.CompletedStats.TotalKm)
	assert.Equal(t, 15800, got.CompletedStats.TotalElevation)
	assert.Equal(t, 2, got.ByStatus.Completed)
	assert.Equal(t, 1, got.ByStatus.DNF)
	assert.Nil(t, got.CompletedStats.AverageTime)
	assert.Nil(t, got.CompletedStats.FastestRace)
}

func TestAggregateNoCompletedRows(t *testing.T) {
	got := Aggregate([]Entry{
		{Status: StatusInterested, Distance: 50},
		{Status: StatusRegistered, Distance: 80, FinishTimeSeconds: ptr(1000)},
		{Status: StatusDNS},
	})

	want := Stats{
		TotalCompetitions: 3,
		ByStatus:          StatusCounts{Interested: 1, Registered: 1, DNS: 1},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, cmp.Diff(Stats{}, Aggregate(nil)))
}

func TestAggregateTimes(t *testing.T) {
	fastID := uuid.New()
	got := Aggregate([]Entry{
		{Name: "CCC", Status: StatusCompleted, Distance: 101.25, FinishTimeSeconds: ptr(ParseTime("20:10:00"))},
		{TargetID: fastID, Name: "OCC", Year: 2023, Status: StatusCompleted, Distance: 55.33, FinishTimeSeconds: ptr(ParseTime("09:05:01"))},
		{Name: "TDS", Status: StatusCompleted, Distance: 145.1, FinishTimeSeconds: ptr(0)},
		{Name: "MCC", Status: StatusCompleted, Distance: 40},
		{Name: "PTL", Status: StatusDNF, FinishTimeSeconds: ptr(10)},
	})

	assert.Equal(t, 4, got.CompletedStats.TotalCompleted)
	assert.Equal(t, 341.7, got.CompletedStats.TotalKm)

	require.NotNil(t, got.CompletedStats.AverageTime)
	// (72600 + 32701) / 2 = 52650.5, rounded half away from zero.
	assert.Equal(t, "14:37:31", *got.CompletedStats.AverageTime)

	require.NotNil(t, got.CompletedStats.FastestRace)
	assert.Equal(t, fastID, got.CompletedStats.FastestRace.TargetID)
	assert.Equal(t, "OCC", got.CompletedStats.FastestRace.Name)
	assert.Equal(t, "09:05:01", got.CompletedStats.FastestRace.FinishTime)
	assert.Equal(t, 32701, got.CompletedStats.FastestRace.FinishTimeSeconds)
}

func TestAggregateFastestKeepsFirstOnTie(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	got := Aggregate([]Entry{
		{TargetID: first, Status: StatusCompleted, FinishTimeSeconds: ptr(3600)},
		{TargetID: second, Status: StatusCompleted, FinishTimeSeconds: ptr(3600)},
	})
	require.NotNil(t, got.CompletedStats.FastestRace)
	assert.Equal(t, first, got.CompletedStats.FastestRace.TargetID)
}
