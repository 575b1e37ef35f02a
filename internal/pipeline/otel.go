package pipeline

import (
	"context"
	"fmt"
	"time"

	"portaletl/internal/infrastructure"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "portaletl.pipeline"
)

// Tracer provides OpenTelemetry instrumentation for pipeline runs
type Tracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.ETLMetrics
}

// NewTracer creates a pipeline tracer. With nil providers the tracer
// still produces spans through the global tracer provider, but records
// no metrics.
func NewTracer(providers *infrastructure.OTelProviders) (*Tracer, error) {
	t := &Tracer{tracer: otel.Tracer(TracerName)}

	if providers != nil && providers.Meter != nil {
		metrics, err := infrastructure.CreateETLMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create etl metrics: %w", err)
		}
		t.metrics = metrics
	}

	return t, nil
}

// TraceRun creates the span covering a whole pipeline run
func (t *Tracer) TraceRun(ctx context.Context, runID string, datasets int) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.datasets", datasets),
		),
	)

	return ctx, span
}

// TraceDataset creates a span for one dataset build
func (t *Tracer) TraceDataset(ctx context.Context, dataset string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("pipeline.dataset.%s", dataset)
	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("dataset", dataset),
		),
	)

	return ctx, span
}

// RecordFileLoaded counts a loaded source file
func (t *Tracer) RecordFileLoaded(ctx context.Context, dataset, format string) {
	infrastructure.RecordFileLoaded(ctx, t.metrics, dataset, format)
}

// RecordDatasetCompletion records a dataset outcome on its span and
// the pipeline metrics
func (t *Tracer) RecordDatasetCompletion(ctx context.Context, span trace.Span, dataset string, rowsRead, rowsPublished int64, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("dataset.status", status),
		attribute.Float64("dataset.duration_seconds", duration.Seconds()),
		attribute.Int64("dataset.rows_read", rowsRead),
		attribute.Int64("dataset.rows_published", rowsPublished),
	)

	if err != nil {
		infrastructure.RecordError(ctx, err,
			trace.WithAttributes(
				attribute.String("dataset", dataset),
			),
		)
		span.SetStatus(codes.Error, "dataset build failed")
	} else {
		span.SetStatus(codes.Ok, "dataset published")
	}

	infrastructure.RecordDatasetMetrics(ctx, t.metrics, dataset, rowsRead, rowsPublished, duration, err)
}

// RecordRunCompletion records the run outcome on its span and the
// pipeline metrics
func (t *Tracer) RecordRunCompletion(ctx context.Context, span trace.Span, succeeded, failed int, duration time.Duration) {
	span.SetAttributes(
		attribute.Int("run.succeeded", succeeded),
		attribute.Int("run.failed", failed),
		attribute.Float64("run.duration_seconds", duration.Seconds()),
	)

	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d datasets failed", failed))
	} else {
		span.SetStatus(codes.Ok, "run completed")
	}

	infrastructure.RecordRunMetrics(ctx, t.metrics, succeeded, failed, duration)
}
