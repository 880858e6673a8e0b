package participation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	redis "github.com/go-redis/redis/v8"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	participationservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/application"
	participationadapters "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/adapters"
	participationcache "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/cache"
	participationhandlers "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/handlers"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
	participationrouter "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/router"
	participationsubscribers "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/subscribers"
	userdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/user/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/eventbus"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/config"
	"github.com/uptrace/bun"
)

// Module represents the participation module.
type Module struct {
	Service             participationservice.Service
	ParticipationRouter *participationrouter.ParticipationRouter
	redis               *redis.Client
	logger              *slog.Logger
}

// Deps are the shared collaborators handed to the module.
type Deps struct {
	DB          *bun.DB
	CatalogRepo catalogdb.Repository
	EventBus    eventbus.EventBus
	Router      *message.Router
	HTTPRouter  chi.Router
	Write       func(http.Handler) http.Handler
}

// NewParticipationModule wires the ledger, the ranking cache and its
// invalidation consumer. The cache is skipped when no Redis URL is
// configured; rankings are then always computed from the store.
func NewParticipationModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	deps Deps,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "participation.NewParticipationModule called")

	module := &Module{logger: logger}

	serviceDeps := participationservice.Dependencies{
		Repo:    participationdb.NewRepository(deps.DB),
		Catalog: participationadapters.NewCatalogLookupAdapter(deps.CatalogRepo),
		Users:   participationadapters.NewUserDirectoryAdapter(userdb.NewRepository(deps.DB)),
		Logger:  logger,
		Metrics: obs.Metrics,
		Tracer:  obs.Tracer,
		DB:      deps.DB,
	}
	if deps.EventBus != nil {
		serviceDeps.Publisher = deps.EventBus
	}

	var rankingCache *participationcache.RankingCache
	if cfg.Redis.URL != "" {
		client, err := participationcache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect ranking cache: %w", err)
		}
		module.redis = client
		rankingCache = participationcache.NewRankingCache(client, cfg.Redis.RankingTTL)
		serviceDeps.Cache = rankingCache
	} else {
		logger.WarnContext(ctx, "Redis URL not set, ranking cache disabled")
	}

	service := participationservice.NewParticipationService(serviceDeps)
	module.Service = service

	if rankingCache != nil && deps.Router != nil && deps.EventBus != nil {
		module.ParticipationRouter = participationrouter.NewParticipationRouter(logger, deps.Router, deps.EventBus, obs.Registry)
		invalidation := participationsubscribers.NewRankingInvalidation(rankingCache, logger)
		if err := module.ParticipationRouter.Configure(ctx, invalidation); err != nil {
			module.Close()
			return nil, fmt.Errorf("failed to configure participation router: %w", err)
		}
	}

	if deps.HTTPRouter != nil {
		participationhandlers.RegisterRoutes(deps.HTTPRouter, participationhandlers.NewParticipationHandlers(service, logger), deps.Write)
	}

	return module, nil
}

// Close releases the Redis connection. The shared message router is closed
// by its owner.
func (m *Module) Close() error {
	m.logger.Info("Stopping participation module")
	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			return fmt.Errorf("error closing redis client: %w", err)
		}
	}
	m.logger.Info("Participation module stopped")
	return nil
}
