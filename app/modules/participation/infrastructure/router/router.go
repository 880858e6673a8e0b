package participationrouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationsubscribers "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/subscribers"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/eventbus"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	handlerPrefix = "participation."

	retryInitialInterval = 100 * time.Millisecond
	retryMaxInterval     = time.Second
)

// ParticipationRouter binds participation topics to their consumers on a
// shared watermill router.
type ParticipationRouter struct {
	logger   *slog.Logger
	Router   *message.Router
	bus      eventbus.EventBus
	registry *prometheus.Registry
}

// NewParticipationRouter wraps router. bus is consumed from and receives
// poisoned messages. A nil registry disables handler metrics.
func NewParticipationRouter(logger *slog.Logger, router *message.Router, bus eventbus.EventBus, registry *prometheus.Registry) *ParticipationRouter {
	return &ParticipationRouter{
		logger:   logger,
		Router:   router,
		bus:      bus,
		registry: registry,
	}
}

// Configure installs middleware and registers the consumers. A handler
// error is retried with backoff, then the message is moved to the poison
// topic and acked, so one bad event never blocks the ones behind it.
func (r *ParticipationRouter) Configure(ctx context.Context, ranking *participationsubscribers.RankingInvalidation) error {
	if r.registry != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware for Participation")
		builder := metrics.NewPrometheusMetricsBuilder(r.registry, "wwtrail", "events")
		builder.AddPrometheusRouterMetrics(r.Router)
	}

	poison, err := middleware.PoisonQueue(r.bus, participationdomain.TopicParticipationPoisoned)
	if err != nil {
		return fmt.Errorf("failed to create poison queue middleware: %w", err)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		poison,
		middleware.Retry{
			MaxRetries:      2,
			InitialInterval: retryInitialInterval,
			MaxInterval:     retryMaxInterval,
			Multiplier:      2,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
	)

	r.logger.InfoContext(ctx, "Registering Participation Event Handlers")
	r.Router.AddNoPublisherHandler(
		handlerPrefix+"ranking_invalidation",
		participationdomain.TopicParticipationChanged,
		r.bus,
		ranking.HandleParticipationChanged,
	)
	return nil
}

// Close stops the router.
func (r *ParticipationRouter) Close() error {
	return r.Router.Close()
}
