package participationservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/operation"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/results"
	"github.com/uptrace/bun"
)

type statsResult = results.OperationResult[participationdomain.Stats, error]

// GetUserStats rolls up the competition ledger. Distances and elevations
// come from the competition base values.
func (s *ParticipationService) GetUserStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetUserStats", userID.String(),
		func(ctx context.Context, db bun.IDB) (statsResult, error) {
			rows, err := s.repo.ListCompetitionEntries(ctx, db, userID)
			if err != nil {
				return statsResult{}, fmt.Errorf("failed to load competition participation: %w", err)
			}
			entries := make([]participationdomain.Entry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, row.Entry())
			}
			return results.SuccessResult[participationdomain.Stats, error](participationdomain.Aggregate(entries)), nil
		}))
}

// GetUserEditionStats rolls up the edition ledger, resolving each edition
// through its competition and event.
func (s *ParticipationService) GetUserEditionStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetUserEditionStats", userID.String(),
		func(ctx context.Context, db bun.IDB) (statsResult, error) {
			rows, err := s.repo.ListEditionEntries(ctx, db, userID)
			if err != nil {
				return statsResult{}, fmt.Errorf("failed to load edition participation: %w", err)
			}
			entries := make([]participationdomain.Entry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, row.Entry())
			}
			return results.SuccessResult[participationdomain.Stats, error](participationdomain.Aggregate(entries)), nil
		}))
}
