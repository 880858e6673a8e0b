package participationsubscribers

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/eventbus"
)

// Invalidator drops cached leaderboard pages.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// RankingInvalidation clears the ranking cache whenever the ledger changes.
type RankingInvalidation struct {
	cache  Invalidator
	logger *slog.Logger
}

func NewRankingInvalidation(cache Invalidator, logger *slog.Logger) *RankingInvalidation {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingInvalidation{cache: cache, logger: logger}
}

// HandleParticipationChanged is a watermill consumer handler. Malformed
// payloads and cache failures are logged and acked; the page TTL bounds how
// long a missed invalidation can leave a stale ranking.
func (h *RankingInvalidation) HandleParticipationChanged(msg *message.Message) error {
	ctx := msg.Context()
	payload, err := eventbus.Decode[participationdomain.ParticipationChangedPayload](msg)
	if err != nil {
		h.logger.WarnContext(ctx, "dropping malformed participation event",
			slog.String("message_uuid", msg.UUID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to invalidate ranking cache",
			slog.String("message_uuid", msg.UUID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	h.logger.DebugContext(ctx, "ranking cache invalidated",
		slog.String("user_id", payload.UserID.String()),
		slog.String("target_kind", string(payload.TargetKind)),
		slog.String("change", string(payload.Change)),
	)
	return nil
}
