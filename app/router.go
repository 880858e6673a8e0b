package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/httpx"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
)

// NewHTTPRouter builds the root router with the shared middleware stack,
// /healthz and, unless a dedicated metrics address is configured, /metrics.
// A nil db reports healthy without pinging.
func NewHTTPRouter(cfg *config.Config, obs observability.Observability, db *bun.DB) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(obs.Logger))
	r.Use(middleware.Recoverer)
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	}

	r.Get("/healthz", healthHandler(db))
	if cfg.Observability.MetricsAddress == "" && obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

func healthHandler(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
