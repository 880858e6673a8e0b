package catalogservice

import (
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
)

// EventView is the event summary embedded in edition responses.
type EventView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	City    string    `json:"city"`
	Country string    `json:"country"`
}

// CompetitionView is the competition summary embedded in edition responses.
type CompetitionView struct {
	ID                  uuid.UUID                     `json:"id"`
	EventID             uuid.UUID                     `json:"eventId"`
	Name                string                        `json:"name"`
	Slug                string                        `json:"slug"`
	Type                catalogdomain.CompetitionType `json:"type"`
	BaseDistance        *float64                      `json:"baseDistance"`
	BaseElevation       *int                          `json:"baseElevation"`
	BaseMaxParticipants *int                          `json:"baseMaxParticipants"`
	Status              string                        `json:"status"`
	Event               *EventView                    `json:"event,omitempty"`
}

// EditionView is a stored edition with its raw (unresolved) override
// columns.
type EditionView struct {
	ID                   uuid.UUID                        `json:"id"`
	CompetitionID        uuid.UUID                        `json:"competitionId"`
	Year                 int                              `json:"year"`
	Slug                 string                           `json:"slug"`
	Distance             *float64                         `json:"distance"`
	Elevation            *int                             `json:"elevation"`
	MaxParticipants      *int                             `json:"maxParticipants"`
	City                 *string                          `json:"city"`
	CurrentParticipants  int                              `json:"currentParticipants"`
	Status               catalogdomain.Status             `json:"status"`
	RegistrationStatus   catalogdomain.RegistrationStatus `json:"registrationStatus"`
	RegistrationOpensAt  *time.Time                       `json:"registrationOpensAt,omitempty"`
	RegistrationClosesAt *time.Time                       `json:"registrationClosesAt,omitempty"`
	StartDate            *time.Time                       `json:"startDate,omitempty"`
	EndDate              *time.Time                       `json:"endDate,omitempty"`
}

// ResolvedEditionView is the effective view of an edition after inheritance.
type ResolvedEditionView struct {
	ID                      uuid.UUID                        `json:"id"`
	Year                    int                              `json:"year"`
	Slug                    string                           `json:"slug"`
	Status                  catalogdomain.Status             `json:"status"`
	RegistrationStatus      catalogdomain.RegistrationStatus `json:"registrationStatus"`
	ResolvedDistance        float64                          `json:"resolvedDistance"`
	ResolvedElevation       int                              `json:"resolvedElevation"`
	ResolvedMaxParticipants int                              `json:"resolvedMaxParticipants"`
	ResolvedCity            string                           `json:"resolvedCity"`
	ResolvedFrom            map[string]catalogdomain.Level   `json:"resolvedFrom"`
	CurrentParticipants     int                              `json:"currentParticipants"`
	StartDate               *time.Time                       `json:"startDate,omitempty"`
	Competition             CompetitionView                  `json:"competition"`
	Event                   EventView                        `json:"event"`
}

// StatusUpdateView is the outcome of a status change. Warnings list
// incoherent status combinations that were stored as requested.
type StatusUpdateView struct {
	Edition  EditionView `json:"edition"`
	Warnings []string    `json:"warnings"`
}

func newEventView(e catalogdomain.EventFields) EventView {
	return EventView{ID: e.ID, Name: e.Name, Slug: e.Slug, City: e.City, Country: e.Country}
}

func newCompetitionView(c catalogdomain.CompetitionFields) CompetitionView {
	return CompetitionView{
		ID:                  c.ID,
		EventID:             c.EventID,
		Name:                c.Name,
		Slug:                c.Slug,
		Type:                c.Type,
		BaseDistance:        c.BaseDistance,
		BaseElevation:       c.BaseElevation,
		BaseMaxParticipants: c.BaseMaxParticipants,
		Status:              c.Status,
	}
}

func newCompetitionViewFromModel(c *catalogdb.Competition) CompetitionView {
	view := newCompetitionView(c.Fields())
	if c.Event != nil {
		event := newEventView(c.Event.Fields())
		view.Event = &event
	}
	return view
}

func newEditionView(e *catalogdb.Edition) EditionView {
	return EditionView{
		ID:                   e.ID,
		CompetitionID:        e.CompetitionID,
		Year:                 e.Year,
		Slug:                 e.Slug,
		Distance:             e.Distance,
		Elevation:            e.Elevation,
		MaxParticipants:      e.MaxParticipants,
		City:                 e.City,
		CurrentParticipants:  e.CurrentParticipants,
		Status:               e.Status,
		RegistrationStatus:   e.RegistrationStatus,
		RegistrationOpensAt:  e.RegistrationOpensAt,
		RegistrationClosesAt: e.RegistrationClosesAt,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
	}
}

func newResolvedEditionView(r catalogdomain.ResolvedEdition) ResolvedEditionView {
	return ResolvedEditionView{
		ID:                      r.Edition.ID,
		Year:                    r.Edition.Year,
		Slug:                    r.Edition.Slug,
		Status:                  r.Edition.Status,
		RegistrationStatus:      r.Edition.RegistrationStatus,
		ResolvedDistance:        r.Distance.OrZero(),
		ResolvedElevation:       r.Elevation.OrZero(),
		ResolvedMaxParticipants: r.MaxParticipants.OrZero(),
		ResolvedCity:            r.City.OrZero(),
		ResolvedFrom: map[string]catalogdomain.Level{
			"distance":        r.Distance.Source,
			"elevation":       r.Elevation.Source,
			"maxParticipants": r.MaxParticipants.Source,
			"city":            r.City.Source,
		},
		CurrentParticipants: r.Edition.CurrentParticipants,
		StartDate:           r.Edition.StartDate,
		Competition:         newCompetitionView(r.Competition),
		Event:               newEventView(r.Event),
	}
}
