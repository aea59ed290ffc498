package refcell

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// metricsRecorder records cell activity.
// Cells use otelMetrics when WithMetrics(true) is set and noopMetrics otherwise.
type metricsRecorder interface {
	// recordRegistration records a Set on the named cell.
	recordRegistration(cell string)

	// recordClear records a Clear on the named cell.
	recordClear(cell string)

	// recordRead records a successful Get/TryGet (or mutable variant).
	recordRead(cell string)

	// recordMiss records an accessor that found the slot empty.
	recordMiss(cell string)

	// recordScope records a completed scoped registration and its duration.
	recordScope(cell string, duration time.Duration)
}

// otelMetrics implements metricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	clears        metric.Int64Counter
	reads         metric.Int64Counter
	misses        metric.Int64Counter
	scopeDuration metric.Float64Histogram
}

var (
	sharedMetrics     *otelMetrics
	sharedMetricsOnce sync.Once
	sharedMetricsErr  error
)

// defaultMetrics returns the shared OTel recorder, lazily created on first
// use. Falls back to a noop recorder if instrument creation fails.
func defaultMetrics() metricsRecorder {
	sharedMetricsOnce.Do(func() {
		sharedMetrics, sharedMetricsErr = newOtelMetrics()
	})
	if sharedMetricsErr != nil {
		return noopMetrics{}
	}
	return sharedMetrics
}

// newOtelMetrics creates a fresh set of instruments on the global meter.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("refcell")

	registrations, err := meter.Int64Counter("refcell.registrations",
		metric.WithDescription("Number of references registered into cells"),
	)
	if err != nil {
		return nil, err
	}

	clears, err := meter.Int64Counter("refcell.clears",
		metric.WithDescription("Number of cell slot clears"),
	)
	if err != nil {
		return nil, err
	}

	reads, err := meter.Int64Counter("refcell.reads",
		metric.WithDescription("Number of successful reads through cells"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter("refcell.misses",
		metric.WithDescription("Number of accesses that found the cell empty"),
	)
	if err != nil {
		return nil, err
	}

	scopeDuration, err := meter.Float64Histogram("refcell.scope.duration_ms",
		metric.WithDescription("Duration of scoped registrations in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		clears:        clears,
		reads:         reads,
		misses:        misses,
		scopeDuration: scopeDuration,
	}, nil
}

// cellAttr builds the attribute set identifying a cell.
func cellAttr(cell string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("cell", cell))
}

func (m *otelMetrics) recordRegistration(cell string) {
	m.registrations.Add(context.Background(), 1, cellAttr(cell))
}

func (m *otelMetrics) recordClear(cell string) {
	m.clears.Add(context.Background(), 1, cellAttr(cell))
}

func (m *otelMetrics) recordRead(cell string) {
	m.reads.Add(context.Background(), 1, cellAttr(cell))
}

func (m *otelMetrics) recordMiss(cell string) {
	m.misses.Add(context.Background(), 1, cellAttr(cell))
}

func (m *otelMetrics) recordScope(cell string, duration time.Duration) {
	m.scopeDuration.Record(context.Background(), float64(duration.Milliseconds()), cellAttr(cell))
}

// noopMetrics is a metricsRecorder that does nothing.
// Used when metrics are disabled to avoid overhead.
type noopMetrics struct{}

// Compile-time interface check.
var _ metricsRecorder = noopMetrics{}

func (noopMetrics) recordRegistration(string) {}

func (noopMetrics) recordClear(string) {}

func (noopMetrics) recordRead(string) {}

func (noopMetrics) recordMiss(string) {}

func (noopMetrics) recordScope(string, time.Duration) {}

// tracer is the refcell tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("refcell")

// startScopeSpan starts a span for a scoped registration, or returns nil when
// tracing is disabled. Cell operations take no context, so scope spans are
// root spans.
func (cfg *cellConfig) startScopeSpan() trace.Span {
	if !cfg.tracing {
		return nil
	}
	_, span := tracer.Start(context.Background(), "refcell.with",
		trace.WithAttributes(attribute.String("cell", cfg.label())),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return span
}

// endScopeSpan completes a scope span, recording the body's error if any.
func endScopeSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
