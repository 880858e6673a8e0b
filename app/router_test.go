package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObservability() observability.Observability {
	obs := observability.NewNoop()
	obs.Registry = prometheus.NewRegistry()
	obs.Metrics = observability.NewPrometheusMetrics(obs.Registry, "wwtrail")
	return obs
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Postgres.DSN = "postgres://unused"
	return &cfg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	obs := testObservability()
	obs.Metrics.RecordTimeParseFailure(context.Background())

	r := NewHTTPRouter(testConfig(), obs, nil)

	rec := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wwtrail_time_parse_failures_total 1")
}

func TestMetricsMovedToDedicatedAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Observability.MetricsAddress = ":9100"

	r := NewHTTPRouter(cfg, testObservability(), nil)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/metrics", "").Code)
}

func TestNewAppMountsModuleRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimitRPS = 0.001
	cfg.HTTP.RateLimitBurst = 1

	app, err := newApp(context.Background(), cfg, testObservability(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.ParticipationModule.ParticipationRouter, "no cache, no invalidation consumer")

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "catalog read", method: http.MethodGet, path: "/editions/not-a-uuid/resolved", want: http.StatusBadRequest},
		{name: "ledger read", method: http.MethodGet, path: "/users/not-a-uuid/stats", want: http.StatusBadRequest},
		{name: "ranking bad type", method: http.MethodGet, path: "/ranking?type=speed", want: http.StatusBadRequest},
		{name: "first write", method: http.MethodPost, path: "/competitions/not-a-uuid/editions/bulk", want: http.StatusBadRequest},
		{name: "write over budget", method: http.MethodPost, path: "/users/not-a-uuid/competitions/not-a-uuid/mark", want: http.StatusTooManyRequests},
		{name: "reads are not limited", method: http.MethodGet, path: "/competitions/not-a-uuid/editions/years", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, app.HTTPRouter, tt.method, tt.path, "{}").Code)
		})
	}
}
