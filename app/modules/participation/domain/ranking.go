package participationdomain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

// Metric selects the leaderboard ordering.
type Metric string

const (
	MetricCompetitions Metric = "competitions"
	MetricKm           Metric = "km"
	MetricElevation    Metric = "elevation"
)

const (
	DefaultRankingLimit = 20
	MaxRankingLimit     = 100
)

var ErrUnknownMetric = apperrors.Validation("unknown ranking type")

// ParseMetric accepts a ranking type case-insensitively. An empty value
// selects the completed-count ranking.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MetricCompetitions, nil
	case MetricCompetitions, MetricKm, MetricElevation:
		return m, nil
	default:
		return "", apperrors.Wrap(ErrUnknownMetric, "unknown ranking type %q", s)
	}
}

// Implemented reports whether the metric has an aggregation behind it. The
// distance and elevation rankings always come back empty.
func (m Metric) Implemented() bool {
	return m == MetricCompetitions
}

// NormalizeLimit applies the default and the upper bound to a page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		return MaxRankingLimit
	}
	return limit
}

// UserCount is a user's aggregated value for a metric, in the order the
// store produced it.
type UserCount struct {
	UserID uuid.UUID
	Count  int
}

// RankedUser is a leaderboard position.
type RankedUser struct {
	Rank   int
	UserID uuid.UUID
	Count  int
}

// AssignRanks numbers rows 1..n in input order. Ties are not broken or
// shared; the store's ordering stands.
func AssignRanks(counts []UserCount) []RankedUser {
	ranked := make([]RankedUser, 0, len(counts))
	for i, c := range counts {
		ranked = append(ranked, RankedUser{Rank: i + 1, UserID: c.UserID, Count: c.Count})
	}
	return ranked
}
