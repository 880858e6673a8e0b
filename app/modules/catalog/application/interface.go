package catalogservice

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the catalog read and write operations exposed to handlers
// and to other modules.
type Service interface {
	GetEvent(ctx context.Context, id uuid.UUID) (EventView, error)
	GetCompetition(ctx context.Context, id uuid.UUID) (CompetitionView, error)
	GetEdition(ctx context.Context, id uuid.UUID) (EditionView, error)
	GetEditionBySlug(ctx context.Context, slug string) (EditionView, error)
	GetEditionByYear(ctx context.Context, competitionID uuid.UUID, year int) (EditionView, error)
	ListEditions(ctx context.Context, competitionID uuid.UUID) ([]ResolvedEditionView, error)

	GetResolvedEdition(ctx context.Context, id uuid.UUID) (ResolvedEditionView, error)
	ResolveRawEdition(ctx context.Context, raw []byte) (ResolvedEditionView, error)

	AvailableYears(ctx context.Context, competitionID uuid.UUID) ([]int, error)
	CreateBulkEditions(ctx context.Context, competitionID uuid.UUID, years []int) ([]EditionView, error)
	CreateEdition(ctx context.Context, competitionID uuid.UUID, input CreateEditionInput) (EditionView, error)
	UpdateEditionStatus(ctx context.Context, id uuid.UUID, status, registrationStatus string) (StatusUpdateView, error)
}
