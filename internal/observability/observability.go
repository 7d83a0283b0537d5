// Package observability builds the logger, Prometheus registry, tracer and
// the HTTP endpoint that exposes them.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	portfoliometrics "github.com/Black-And-White-Club/portfolio-bot/internal/observability/metrics/portfolio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "portfolio-bot"

// Config selects the log output and labels the process.
type Config struct {
	LogLevel    string
	LogFormat   string
	Environment string
}

// Observability bundles what modules need to log, trace and count.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
	Metrics  portfoliometrics.PortfolioMetrics
}

// Init builds an Observability writing logs to w.
func Init(w io.Writer, cfg Config) (*Observability, error) {
	logger, err := NewLogger(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := portfoliometrics.NewPrometheus(registry, "portfolio")
	if err != nil {
		return nil, fmt.Errorf("failed to register portfolio metrics: %w", err)
	}

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Tracer:   otel.Tracer(serviceName),
		Metrics:  metrics,
	}, nil
}

// NewLogger returns a slog logger for level ("debug", "info", "warn", "error")
// in "text" or "json" format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return slog.New(handler).With(slog.String("service", serviceName)), nil
}
