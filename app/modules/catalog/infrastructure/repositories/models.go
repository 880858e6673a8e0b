package catalogdb

import (
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	"github.com/uptrace/bun"
)

// Event is the top-level sporting event.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Slug          string    `bun:"slug,unique,notnull" json:"slug"`
	City          string    `bun:"city,notnull,default:''" json:"city"`
	Country       string    `bun:"country,notnull,default:''" json:"country"`
	Description   *string   `bun:"description" json:"description,omitempty"`
	Website       *string   `bun:"website" json:"website,omitempty"`
	TypicalMonth  *int      `bun:"typical_month" json:"typicalMonth,omitempty"`
	Status        string    `bun:"status,notnull,default:'PUBLISHED'" json:"status"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Competition is a race within an Event carrying the base attributes its
// editions inherit.
type Competition struct {
	bun.BaseModel       `bun:"table:competitions,alias:co"`
	ID                  uuid.UUID                     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	EventID             uuid.UUID                     `bun:"event_id,notnull,type:uuid" json:"eventId"`
	Name                string                        `bun:"name,notnull" json:"name"`
	Slug                string                        `bun:"slug,unique,notnull" json:"slug"`
	Type                catalogdomain.CompetitionType `bun:"type,notnull,default:'TRAIL'" json:"type"`
	BaseDistance        *float64                      `bun:"base_distance" json:"baseDistance"`
	BaseElevation       *int                          `bun:"base_elevation" json:"baseElevation"`
	BaseMaxParticipants *int                          `bun:"base_max_participants" json:"baseMaxParticipants"`
	Status              string                        `bun:"status,notnull,default:'ACTIVE'" json:"status"`
	CreatedAt           time.Time                     `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt           time.Time                     `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Event *Event `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
}

// Edition is one year's running of a Competition. Nil override columns
// inherit from the competition.
type Edition struct {
	bun.BaseModel        `bun:"table:editions,alias:ed"`
	ID                   uuid.UUID                        `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	CompetitionID        uuid.UUID                        `bun:"competition_id,notnull,type:uuid" json:"competitionId"`
	Year                 int                              `bun:"year,notnull" json:"year"`
	Slug                 string                           `bun:"slug,unique,notnull" json:"slug"`
	Distance             *float64                         `bun:"distance" json:"distance"`
	Elevation            *int                             `bun:"elevation" json:"elevation"`
	MaxParticipants      *int                             `bun:"max_participants" json:"maxParticipants"`
	City                 *string                          `bun:"city" json:"city"`
	CurrentParticipants  int                              `bun:"current_participants,notnull,default:0" json:"currentParticipants"`
	Status               catalogdomain.Status             `bun:"status,notnull,default:'UPCOMING'" json:"status"`
	RegistrationStatus   catalogdomain.RegistrationStatus `bun:"registration_status,notnull,default:'COMING_SOON'" json:"registrationStatus"`
	RegistrationOpensAt  *time.Time                       `bun:"registration_opens_at" json:"registrationOpensAt,omitempty"`
	RegistrationClosesAt *time.Time                       `bun:"registration_closes_at" json:"registrationClosesAt,omitempty"`
	StartDate            *time.Time                       `bun:"start_date" json:"startDate,omitempty"`
	EndDate              *time.Time                       `bun:"end_date" json:"endDate,omitempty"`
	CreatedAt            time.Time                        `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt            time.Time                        `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Competition *Competition `bun:"rel:belongs-to,join:competition_id=id" json:"competition,omitempty"`
}

// Fields returns the canonical event section.
func (e *Event) Fields() catalogdomain.EventFields {
	if e == nil {
		return catalogdomain.EventFields{}
	}
	return catalogdomain.EventFields{
		ID:      e.ID,
		Name:    e.Name,
		Slug:    e.Slug,
		City:    e.City,
		Country: e.Country,
	}
}

// Fields returns the canonical competition section.
func (c *Competition) Fields() catalogdomain.CompetitionFields {
	if c == nil {
		return catalogdomain.CompetitionFields{}
	}
	return catalogdomain.CompetitionFields{
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

// Fields returns the canonical edition section.
func (e *Edition) Fields() catalogdomain.EditionFields {
	if e == nil {
		return catalogdomain.EditionFields{}
	}
	return catalogdomain.EditionFields{
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

// Normalized returns the edition with whichever parents were loaded.
func (e *Edition) Normalized() catalogdomain.NormalizedEdition {
	out := catalogdomain.NormalizedEdition{Edition: e.Fields()}
	if e != nil && e.Competition != nil {
		out.Competition = e.Competition.Fields()
		out.Event = e.Competition.Event.Fields()
	}
	return out
}
