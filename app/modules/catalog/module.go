package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	catalogservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/application"
	cataloghandlers "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/handlers"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/uptrace/bun"
)

// Module represents the catalog module.
type Module struct {
	Repo    catalogdb.Repository
	Service catalogservice.Service
}

// NewCatalogModule wires the catalog repository, service and HTTP routes.
// A nil httpRouter skips route registration.
func NewCatalogModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	write func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "catalog.NewCatalogModule called")

	repo := catalogdb.NewRepository(db)
	service := catalogservice.NewCatalogService(repo, logger, obs.Metrics, obs.Tracer, db)

	if httpRouter != nil {
		cataloghandlers.RegisterRoutes(httpRouter, cataloghandlers.NewCatalogHandlers(service, logger), write)
	}

	return &Module{Repo: repo, Service: service}, nil
}
