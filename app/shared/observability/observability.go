// Package observability bundles the logger, tracer and metrics shared by
// every module.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observability is handed to each module at construction time.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  Metrics
	Registry *prometheus.Registry
}

// Config selects logger format and level.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
}

// New builds the production bundle: JSON logs outside development, the
// global otel tracer and a fresh prometheus registry.
func New(cfg Config) Observability {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg Config, w io.Writer) Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	return Observability{
		Logger:   NewLogger(cfg, w),
		Tracer:   otel.Tracer(cfg.ServiceName),
		Metrics:  NewPrometheusMetrics(registry, "wwtrail"),
		Registry: registry,
	}
}

// NewNoop returns a bundle that discards everything. Used in tests.
func NewNoop() Observability {
	return Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  noop.NewTracerProvider().Tracer("noop"),
		Metrics: NoopMetrics{},
	}
}

// NewLogger returns a slog logger writing text in development and JSON
// elsewhere.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.ServiceName))
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
