package participationservice

import (
	"context"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Service defines the participation ledger, statistics and ranking
// operations.
type Service interface {
	MarkCompetition(ctx context.Context, userID, competitionID uuid.UUID, status string) (*participationdb.UserCompetition, error)
	AddCompetitionResult(ctx context.Context, userID, competitionID uuid.UUID, input ResultInput) (*participationdb.UserCompetition, error)
	UnmarkCompetition(ctx context.Context, userID, competitionID uuid.UUID) error
	GetUserCompetitions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserCompetition, error)

	MarkEdition(ctx context.Context, userID, editionID uuid.UUID, status string) (*participationdb.UserEdition, error)
	AddEditionResult(ctx context.Context, userID, editionID uuid.UUID, input ResultInput) (*participationdb.UserEdition, error)
	UnmarkEdition(ctx context.Context, userID, editionID uuid.UUID) error
	GetUserEditions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserEdition, error)

	// GetUserStats aggregates the competition ledger.
	GetUserStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error)

	// GetUserEditionStats aggregates the edition ledger.
	GetUserEditionStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error)

	GetGlobalRanking(ctx context.Context, metric string, limit int) ([]RankingEntryView, error)
}

// CatalogLookup checks that a ledger target exists.
type CatalogLookup interface {
	CompetitionExists(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error)
	EditionExists(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error)
}

// UserDirectory supplies the profile shown beside each ranking position.
type UserDirectory interface {
	GetUserSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]UserSummary, error)
}

// RankingCache stores leaderboard pages keyed by metric and limit. Set only
// stores a page when no invalidation has happened since generation was read.
type RankingCache interface {
	Get(ctx context.Context, metric string, limit int, dest any) (bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, metric string, limit int, generation int64, value any) (bool, error)
}
