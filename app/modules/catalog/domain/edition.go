// Package catalogdomain holds the pure rules of the Event → Competition →
// Edition hierarchy: shape normalization, attribute resolution, year
// bookkeeping and the edition status model.
package catalogdomain

import (
	"time"

	"github.com/google/uuid"
)

// EditionFields is the canonical edition section. Optional overrides are nil
// when the edition does not set them.
type EditionFields struct {
	ID                   uuid.UUID
	CompetitionID        uuid.UUID
	Year                 int
	Slug                 string
	Distance             *float64
	Elevation            *int
	MaxParticipants      *int
	City                 *string
	CurrentParticipants  int
	Status               Status
	RegistrationStatus   RegistrationStatus
	RegistrationOpensAt  *time.Time
	RegistrationClosesAt *time.Time
	StartDate            *time.Time
	EndDate              *time.Time
}

// CompetitionFields is the canonical competition (parent) section.
type CompetitionFields struct {
	ID                  uuid.UUID
	EventID             uuid.UUID
	Name                string
	Slug                string
	Type                CompetitionType
	BaseDistance        *float64
	BaseElevation       *int
	BaseMaxParticipants *int
	Status              string
}

// EventFields is the canonical event (grandparent) section.
type EventFields struct {
	ID      uuid.UUID
	Name    string
	Slug    string
	City    string
	Country string
}

// NormalizedEdition is the single in-memory shape handed to resolution,
// whatever wire shape the record arrived in.
type NormalizedEdition struct {
	Edition     EditionFields
	Competition CompetitionFields
	Event       EventFields
}
