package participationdb

import (
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/uptrace/bun"
)

// UserCompetition is a user's ledger row for a competition.
type UserCompetition struct {
	bun.BaseModel     `bun:"table:user_competitions,alias:uc"`
	ID                uuid.UUID                  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID                  `bun:"user_id,notnull,type:uuid" json:"userId"`
	CompetitionID     uuid.UUID                  `bun:"competition_id,notnull,type:uuid" json:"competitionId"`
	Status            participationdomain.Status `bun:"status,notnull" json:"status"`
	FinishTime        *string                    `bun:"finish_time" json:"finishTime,omitempty"`
	FinishTimeSeconds *int                       `bun:"finish_time_seconds" json:"finishTimeSeconds,omitempty"`
	Position          *int                       `bun:"position" json:"position,omitempty"`
	CategoryPosition  *int                       `bun:"category_position" json:"categoryPosition,omitempty"`
	Notes             *string                    `bun:"notes" json:"notes,omitempty"`
	PersonalRating    *int                       `bun:"personal_rating" json:"personalRating,omitempty"`
	CompletedAt       *time.Time                 `bun:"completed_at" json:"completedAt,omitempty"`
	CreatedAt         time.Time                  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time                  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Competition *catalogdb.Competition `bun:"rel:belongs-to,join:competition_id=id" json:"competition,omitempty"`
}

// UserEdition is a user's ledger row for a single edition.
type UserEdition struct {
	bun.BaseModel     `bun:"table:user_editions,alias:ue"`
	ID                uuid.UUID                  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID                  `bun:"user_id,notnull,type:uuid" json:"userId"`
	EditionID         uuid.UUID                  `bun:"edition_id,notnull,type:uuid" json:"editionId"`
	Status            participationdomain.Status `bun:"status,notnull" json:"status"`
	FinishTime        *string                    `bun:"finish_time" json:"finishTime,omitempty"`
	FinishTimeSeconds *int                       `bun:"finish_time_seconds" json:"finishTimeSeconds,omitempty"`
	Position          *int                       `bun:"position" json:"position,omitempty"`
	CategoryPosition  *int                       `bun:"category_position" json:"categoryPosition,omitempty"`
	BibNumber         *string                    `bun:"bib_number" json:"bibNumber,omitempty"`
	CategoryType      *string                    `bun:"category_type" json:"categoryType,omitempty"`
	CategoryName      *string                    `bun:"category_name" json:"categoryName,omitempty"`
	Notes             *string                    `bun:"notes" json:"notes,omitempty"`
	PersonalRating    *int                       `bun:"personal_rating" json:"personalRating,omitempty"`
	CompletedAt       *time.Time                 `bun:"completed_at" json:"completedAt,omitempty"`
	CreatedAt         time.Time                  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time                  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Edition *catalogdb.Edition `bun:"rel:belongs-to,join:edition_id=id" json:"edition,omitempty"`
}

// Ledger columns a write may touch. Columns outside a write's list keep
// their stored value on conflict.
const (
	ColStatus            = "status"
	ColFinishTime        = "finish_time"
	ColFinishTimeSeconds = "finish_time_seconds"
	ColPosition          = "position"
	ColCategoryPosition  = "category_position"
	ColNotes             = "notes"
	ColPersonalRating    = "personal_rating"
	ColCompletedAt       = "completed_at"
	ColBibNumber         = "bib_number"
	ColCategoryType      = "category_type"
	ColCategoryName      = "category_name"
)

// Entry converts a competition row into an aggregation input, resolving
// distance and elevation from the competition's base values.
func (uc *UserCompetition) Entry() participationdomain.Entry {
	entry := participationdomain.Entry{
		TargetID:          uc.CompetitionID,
		Status:            uc.Status,
		FinishTime:        uc.FinishTime,
		FinishTimeSeconds: uc.FinishTimeSeconds,
		CompletedAt:       uc.CompletedAt,
	}
	if uc.Competition != nil {
		entry.Name = uc.Competition.Name
		resolved := catalogdomain.Resolve(catalogdomain.EditionFields{}, uc.Competition.Fields(), catalogdomain.EventFields{})
		entry.Distance = resolved.Distance.OrZero()
		entry.Elevation = resolved.Elevation.OrZero()
	}
	return entry
}

// Entry converts an edition row into an aggregation input, resolving through
// the edition, competition and event chain.
func (ue *UserEdition) Entry() participationdomain.Entry {
	entry := participationdomain.Entry{
		TargetID:          ue.EditionID,
		Status:            ue.Status,
		FinishTime:        ue.FinishTime,
		FinishTimeSeconds: ue.FinishTimeSeconds,
		CompletedAt:       ue.CompletedAt,
	}
	if ue.Edition != nil {
		entry.Year = ue.Edition.Year
		if ue.Edition.Competition != nil {
			entry.Name = ue.Edition.Competition.Name
		}
		resolved := catalogdomain.ResolveNormalized(ue.Edition.Normalized())
		entry.Distance = resolved.Distance.OrZero()
		entry.Elevation = resolved.Elevation.OrZero()
	}
	return entry
}
