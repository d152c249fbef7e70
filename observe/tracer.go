package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// LoadTracer wraps OpenTelemetry tracing with span management for cache
// load operations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndLoad must be best-effort and must not panic.
type LoadTracer interface {
	// StartLoad starts a span for loading the given cache key.
	StartLoad(ctx context.Context, op, key string) (context.Context, trace.Span)

	// EndLoad ends the span, recording whether the value came from cache
	// and any load error.
	EndLoad(span trace.Span, cached bool, err error)
}

// loadTracer is the concrete implementation of LoadTracer.
type loadTracer struct {
	tracer trace.Tracer
}

// NewLoadTracer creates a LoadTracer wrapping the given OpenTelemetry tracer.
func NewLoadTracer(t trace.Tracer) LoadTracer {
	return &loadTracer{tracer: t}
}

// StartLoad starts a span named load.<op> with the cache key attached.
func (t *loadTracer) StartLoad(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "load."+op,
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Bool("cache.hit", false), // Updated in EndLoad
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndLoad ends the span and records the outcome.
func (t *loadTracer) EndLoad(span trace.Span, cached bool, err error) {
	span.SetAttributes(attribute.Bool("cache.hit", cached))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopLoadTracer is a tracer that does nothing.
type noopLoadTracer struct {
	noop trace.Tracer
}

// NewNoopLoadTracer creates a no-op LoadTracer.
func NewNoopLoadTracer() LoadTracer {
	return &noopLoadTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopLoadTracer) StartLoad(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.noop.Start(ctx, "load."+op)
}

func (t *noopLoadTracer) EndLoad(span trace.Span, cached bool, err error) {
	span.End()
}
