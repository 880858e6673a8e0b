package catalogdomain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

// Status is the lifecycle status of an edition.
type Status string

const (
	StatusUpcoming           Status = "UPCOMING"
	StatusOngoing            Status = "ONGOING"
	StatusFinished           Status = "FINISHED"
	StatusRegistrationClosed Status = "REGISTRATION_CLOSED"
	StatusCancelled          Status = "CANCELLED"
)

// RegistrationStatus is the registration state of an edition. It is set
// independently of Status.
type RegistrationStatus string

const (
	RegistrationOpen       RegistrationStatus = "OPEN"
	RegistrationClosed     RegistrationStatus = "CLOSED"
	RegistrationFull       RegistrationStatus = "FULL"
	RegistrationComingSoon RegistrationStatus = "COMING_SOON"
)

var (
	ErrUnknownStatus             = apperrors.Validation("unknown edition status")
	ErrUnknownRegistrationStatus = apperrors.Validation("unknown registration status")
)

var allStatuses = []Status{
	StatusUpcoming,
	StatusOngoing,
	StatusFinished,
	StatusRegistrationClosed,
	StatusCancelled,
}

var allRegistrationStatuses = []RegistrationStatus{
	RegistrationOpen,
	RegistrationClosed,
	RegistrationFull,
	RegistrationComingSoon,
}

// compatibleRegistration lists, per lifecycle status, the registration
// statuses that make sense alongside it.
var compatibleRegistration = map[Status][]RegistrationStatus{
	StatusUpcoming:           {RegistrationComingSoon, RegistrationOpen},
	StatusOngoing:            {RegistrationClosed},
	StatusFinished:           {RegistrationClosed},
	StatusRegistrationClosed: {RegistrationClosed, RegistrationFull},
	StatusCancelled:          {RegistrationClosed},
}

// ParseStatus accepts a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(allStatuses, candidate) {
		return candidate, nil
	}
	return "", apperrors.Wrap(ErrUnknownStatus, "unknown edition status %q", s)
}

// ParseRegistrationStatus accepts a registration status name
// case-insensitively.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	candidate := RegistrationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(allRegistrationStatuses, candidate) {
		return candidate, nil
	}
	return "", apperrors.Wrap(ErrUnknownRegistrationStatus, "unknown registration status %q", s)
}

// Incoherence describes a status pair outside the compatibility table.
type Incoherence struct {
	Status             Status               `json:"status"`
	RegistrationStatus RegistrationStatus   `json:"registrationStatus"`
	Expected           []RegistrationStatus `json:"expected"`
}

func (i Incoherence) String() string {
	return fmt.Sprintf("registration status %s is not expected while edition is %s (expected one of %v)",
		i.RegistrationStatus, i.Status, i.Expected)
}

// ValidateStatusPair flags, without correcting, a registration status that
// does not belong with the lifecycle status. It returns nil for a coherent
// pair.
func ValidateStatusPair(status Status, reg RegistrationStatus) *Incoherence {
	expected, ok := compatibleRegistration[status]
	if !ok {
		return &Incoherence{Status: status, RegistrationStatus: reg}
	}
	if slices.Contains(expected, reg) {
		return nil
	}
	return &Incoherence{
		Status:             status,
		RegistrationStatus: reg,
		Expected:           slices.Clone(expected),
	}
}

// CompetitionType is the fixed category set for competitions.
type CompetitionType string

const (
	CompetitionTrail      CompetitionType = "TRAIL"
	CompetitionUltra      CompetitionType = "ULTRA"
	CompetitionVertical   CompetitionType = "VERTICAL"
	CompetitionSkyrunning CompetitionType = "SKYRUNNING"
	CompetitionCanicross  CompetitionType = "CANICROSS"
	CompetitionOther      CompetitionType = "OTHER"
)
