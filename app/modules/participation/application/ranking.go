package participationservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/operation"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/results"
)

type rankingResult = results.OperationResult[[]RankingEntryView, error]

// GetGlobalRanking returns the leaderboard for metric. Only the completed
// count is aggregated; km and elevation return an empty list. Pages are
// served from the cache when present.
func (s *ParticipationService) GetGlobalRanking(ctx context.Context, metric string, limit int) ([]RankingEntryView, error) {
	parsed, err := participationdomain.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	limit = participationdomain.NormalizeLimit(limit)
	if !parsed.Implemented() {
		return []RankingEntryView{}, nil
	}

	if cached, ok := s.cachedRanking(ctx, parsed, limit); ok {
		return cached, nil
	}
	generation, cacheable := s.cacheGeneration(ctx)

	views, err := operation.Unwrap(operation.WithTelemetry(s.runner, ctx, "GetGlobalRanking", string(parsed),
		func(ctx context.Context) (rankingResult, error) {
			counts, err := s.repo.CountCompletedByUser(ctx, nil, limit)
			if err != nil {
				return rankingResult{}, fmt.Errorf("failed to count completed participation: %w", err)
			}
			ranked := participationdomain.AssignRanks(counts)

			ids := make([]uuid.UUID, 0, len(ranked))
			for _, r := range ranked {
				ids = append(ids, r.UserID)
			}
			users := map[uuid.UUID]UserSummary{}
			if len(ids) > 0 {
				users, err = s.users.GetUserSummaries(ctx, ids)
				if err != nil {
					return rankingResult{}, fmt.Errorf("failed to load ranked users: %w", err)
				}
			}

			views := make([]RankingEntryView, 0, len(ranked))
			for _, r := range ranked {
				user, ok := users[r.UserID]
				if !ok {
					user = UserSummary{ID: r.UserID}
				}
				views = append(views, RankingEntryView{Rank: r.Rank, User: user, Count: r.Count})
			}
			return results.SuccessResult[[]RankingEntryView, error](views), nil
		}))
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.cache.Set(ctx, string(parsed), limit, generation, views)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "failed to cache ranking", slog.Any("error", err))
		case !stored:
			s.logger.DebugContext(ctx, "ranking changed while computing, page not cached")
		}
	}
	return views, nil
}

// cacheGeneration reads the invalidation counter before the page is
// computed. Without it the page is not cached.
func (s *ParticipationService) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "ranking cache generation read failed", slog.Any("error", err))
		return 0, false
	}
	return generation, true
}

// cachedRanking treats a cache error as a miss.
func (s *ParticipationService) cachedRanking(ctx context.Context, metric participationdomain.Metric, limit int) ([]RankingEntryView, bool) {
	if s.cache == nil {
		return nil, false
	}
	var views []RankingEntryView
	hit, err := s.cache.Get(ctx, string(metric), limit, &views)
	if err != nil {
		s.logger.WarnContext(ctx, "ranking cache read failed", slog.Any("error", err))
		return nil, false
	}
	if !hit {
		return nil, false
	}
	if views == nil {
		views = []RankingEntryView{}
	}
	return views, true
}
