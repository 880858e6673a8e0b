// Package participationdomain holds the pure rules of the participation
// ledger: statuses, the race time codec, per-user statistics and the
// leaderboard ranking.
package participationdomain

import (
	"slices"
	"strings"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

// Status is a user's relationship to a competition or edition.
type Status string

const (
	StatusInterested Status = "INTERESTED"
	StatusRegistered Status = "REGISTERED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCompleted  Status = "COMPLETED"
	StatusDNF        Status = "DNF"
	StatusDNS        Status = "DNS"
)

var allStatuses = []Status{
	StatusInterested,
	StatusRegistered,
	StatusConfirmed,
	StatusCompleted,
	StatusDNF,
	StatusDNS,
}

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrUnknownStatus = apperrors.Validation("unknown participation status")
	ErrInvalidRating = apperrors.Validation("personal rating must be between 1 and 5")
)

// ParseStatus accepts a participation status case-insensitively.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(allStatuses, candidate) {
		return candidate, nil
	}
	return "", apperrors.Wrap(ErrUnknownStatus, "unknown participation status %q", s)
}

// ValidateRating accepts a nil rating or one in [MinRating, MaxRating].
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return apperrors.Wrap(ErrInvalidRating, "personal rating %d is outside %d-%d", *rating, MinRating, MaxRating)
	}
	return nil
}
