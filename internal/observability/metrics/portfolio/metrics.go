package portfoliometrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PortfolioMetrics records service, command and media download activity.
type PortfolioMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)

	RecordCommand(ctx context.Context, command, outcome string)
	RecordMediaDownload(ctx context.Context, outcome string, bytes int64)
}

// Command outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type prometheusMetrics struct {
	attempts   *prometheus.CounterVec
	successes  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	commands   *prometheus.CounterVec
	downloads  *prometheus.CounterVec
	downloaded prometheus.Counter
}

// NewPrometheus registers the portfolio collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (PortfolioMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_success_total",
			Help:      "Service operations that completed without a fault.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned a fault or panicked.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discord",
			Name:      "commands_total",
			Help:      "Bot commands handled, by outcome.",
		}, []string{"command", "outcome"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "downloads_total",
			Help:      "Attachment downloads, by outcome.",
		}, []string{"outcome"}),
		downloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "downloaded_bytes_total",
			Help:      "Bytes written to the media directory.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.attempts, m.successes, m.failures, m.durations, m.commands, m.downloads, m.downloaded,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordCommand(_ context.Context, command, outcome string) {
	m.commands.WithLabelValues(command, outcome).Inc()
}

func (m *prometheusMetrics) RecordMediaDownload(_ context.Context, outcome string, bytes int64) {
	m.downloads.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		m.downloaded.Add(float64(bytes))
	}
}

type noop struct{}

// NewNoop returns metrics that discard everything.
func NewNoop() PortfolioMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordCommand(context.Context, string, string)                          {}
func (noop) RecordMediaDownload(context.Context, string, int64)                     {}
