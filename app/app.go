package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/clock"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/eventbus"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/httpx"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/config"
	"github.com/nicolapicasso/wwtrail-all-sub003/db/bundb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// App holds the process-wide resources and the modules built on them.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    chi.Router

	CatalogModule       *catalog.Module
	ParticipationModule *participation.Module

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp connects to Postgres and wires every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	db, err := bundb.Open(ctx, bundb.Options{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app, err := newApp(ctx, cfg, obs, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB) (*App, error) {
	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      eventbus.New(obs.Logger),
	}

	router, err := eventbus.NewRouter(obs.Logger)
	if err != nil {
		return nil, err
	}
	app.Router = router
	app.HTTPRouter = NewHTTPRouter(cfg, obs, db)

	budget := httpx.NewWriteBudget(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst, clock.Real{}, obs.Logger)
	write := budget.Middleware

	app.CatalogModule, err = catalog.NewCatalogModule(ctx, obs, db, app.HTTPRouter, write)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog module: %w", err)
	}

	app.ParticipationModule, err = participation.NewParticipationModule(ctx, cfg, obs, participation.Deps{
		DB:          db,
		CatalogRepo: app.CatalogModule.Repo,
		EventBus:    app.EventBus,
		Router:      app.Router,
		HTTPRouter:  app.HTTPRouter,
		Write:       write,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize participation module: %w", err)
	}

	app.httpServer = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      app.HTTPRouter,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	if addr := cfg.Observability.MetricsAddress; addr != "" && obs.Registry != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{Addr: addr, Handler: mux}
	}

	return app, nil
}

// Run serves HTTP and consumes events until ctx is canceled or a server
// fails, then shuts the servers down within the configured timeout.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	errCh := make(chan error, 3)

	if app.ParticipationModule.ParticipationRouter != nil {
		go func() {
			if err := app.Router.Run(ctx); err != nil {
				errCh <- fmt.Errorf("message router: %w", err)
			}
		}()
		select {
		case <-app.Router.Running():
			logger.InfoContext(ctx, "Message router running")
		case err := <-errCh:
			return err
		}
	}

	serve := func(name string, srv *http.Server) {
		logger.InfoContext(ctx, "Starting HTTP server", "server", name, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", name, err)
		}
	}
	go serve("api", app.httpServer)
	if app.metricsServer != nil {
		go serve("metrics", app.metricsServer)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errCh:
		logger.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", "error", err)
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down metrics server", "error", err)
		}
	}
	return runErr
}

// Close releases modules, the event bus and the database.
func (app *App) Close() error {
	var errs []error
	if app.ParticipationModule != nil {
		errs = append(errs, app.ParticipationModule.Close())
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
