package examplegen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RenderOutcome is the result class of one render call.
type RenderOutcome string

const (
	OutcomeRendered RenderOutcome = "rendered"
	OutcomeAbsent   RenderOutcome = "absent"
	OutcomeFailure  RenderOutcome = "failure"
)

// MetricsRecorder records engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRender records one render call with its duration and outcome.
	RecordRender(ctx context.Context, category Category, duration time.Duration, outcome RenderOutcome)

	// RecordCacheHit records a render answered from the example cache.
	RecordCacheHit(ctx context.Context, category Category)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordRender(context.Context, Category, time.Duration, RenderOutcome) {}

func (NoopMetrics) RecordCacheHit(context.Context, Category) {}

type otelMetrics struct {
	requests  metric.Int64Counter
	cacheHits metric.Int64Counter
	absent    metric.Int64Counter
	failures  metric.Int64Counter
	latency   metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("examplegen")

	requests, err := meter.Int64Counter("examplegen.render.requests",
		metric.WithDescription("Number of example render calls"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("examplegen.render.cache_hits",
		metric.WithDescription("Render calls answered from the example cache"),
	)
	if err != nil {
		return nil, err
	}

	absent, err := meter.Int64Counter("examplegen.render.absent",
		metric.WithDescription("Render calls that produced no example"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("examplegen.render.failures",
		metric.WithDescription("Render calls that produced a failure fragment"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("examplegen.render.latency_ms",
		metric.WithDescription("Render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		requests:  requests,
		cacheHits: cacheHits,
		absent:    absent,
		failures:  failures,
		latency:   latency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global
// OpenTelemetry meter provider, or NoopMetrics if the instruments cannot
// be created.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordRender(ctx context.Context, category Category, duration time.Duration, outcome RenderOutcome) {
	attrs := metric.WithAttributes(
		attribute.String("category", string(category)),
		attribute.String("outcome", string(outcome)),
	)
	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	switch outcome {
	case OutcomeAbsent:
		m.absent.Add(ctx, 1, attrs)
	case OutcomeFailure:
		m.failures.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordCacheHit(ctx context.Context, category Category) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("category", string(category))))
}
