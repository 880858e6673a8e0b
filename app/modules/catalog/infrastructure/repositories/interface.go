package catalogdb

import (
	"context"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for catalog persistence.
type Repository interface {
	// GetEventByID retrieves an event.
	GetEventByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Event, error)

	// GetCompetitionByID retrieves a competition with its event.
	GetCompetitionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Competition, error)

	// GetEditionByID retrieves an edition with its competition and event.
	GetEditionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Edition, error)

	// GetEditionBySlug retrieves an edition with its parents by slug.
	GetEditionBySlug(ctx context.Context, db bun.IDB, slug string) (*Edition, error)

	// GetEditionByYear retrieves the edition of a competition for a year.
	GetEditionByYear(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*Edition, error)

	// ListEditionsByCompetition lists a competition's editions, newest first.
	ListEditionsByCompetition(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*Edition, error)

	// GetFlatEdition reads an edition joined with its parents as a single
	// flattened row keyed by prefixed column names.
	GetFlatEdition(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error)

	// ListEditionYears returns the years of a competition's editions.
	ListEditionYears(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error)

	// CreateEditions inserts editions in one statement.
	CreateEditions(ctx context.Context, db bun.IDB, editions []*Edition) error

	// UpdateEditionStatus stores a status pair as given.
	UpdateEditionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error
}
