package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttrs(s sdktrace.ReadOnlySpan) map[string]attribute.Value {
	m := make(map[string]attribute.Value)
	for _, a := range s.Attributes() {
		m[string(a.Key)] = a.Value
	}
	return m
}

// TestLoadTracer_SpanAttributes verifies span name and attributes on a cache hit.
func TestLoadTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	tr := NewLoadTracer(tp.Tracer("test"))

	_, span := tr.StartLoad(context.Background(), "user_profile", "load:user_profile:abc123")
	tr.EndLoad(span, true, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Name() != "load.user_profile" {
		t.Errorf("span name = %q, want load.user_profile", s.Name())
	}

	attrs := spanAttrs(s)
	if v, ok := attrs["cache.key"]; !ok || v.AsString() != "load:user_profile:abc123" {
		t.Errorf("cache.key = %v, want load:user_profile:abc123", v)
	}
	if v, ok := attrs["cache.hit"]; !ok || !v.AsBool() {
		t.Errorf("cache.hit = %v, want true", v)
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}
}

// TestLoadTracer_ErrorRecording verifies a failed load sets error status.
func TestLoadTracer_ErrorRecording(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	tr := NewLoadTracer(tp.Tracer("test"))

	_, span := tr.StartLoad(context.Background(), "user_profile", "key")
	testErr := errors.New("downstream unavailable")
	tr.EndLoad(span, false, testErr)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", s.Status().Code)
	}
	if attrs := spanAttrs(s); attrs["cache.hit"].AsBool() {
		t.Error("cache.hit = true, want false on a load")
	}
	if len(s.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}

// TestLoadTracer_ContextPropagation verifies parent spans are propagated.
func TestLoadTracer_ContextPropagation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	tr := NewLoadTracer(tracer)

	parentCtx, parentSpan := tracer.Start(context.Background(), "request")
	_, childSpan := tr.StartLoad(parentCtx, "user_profile", "key")
	tr.EndLoad(childSpan, false, nil)
	parentSpan.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	var child sdktrace.ReadOnlySpan
	for _, s := range spans {
		if s.Name() == "load.user_profile" {
			child = s
			break
		}
	}
	if child == nil {
		t.Fatal("load span not found")
	}

	if child.Parent().TraceID() != parentSpan.SpanContext().TraceID() {
		t.Error("load span should share the parent's trace ID")
	}
	if !child.Parent().SpanID().IsValid() {
		t.Error("load span should have a valid parent span ID")
	}
}

// TestNoopLoadTracer verifies the no-op tracer is safe to call.
func TestNoopLoadTracer(t *testing.T) {
	tr := NewNoopLoadTracer()

	ctx, span := tr.StartLoad(context.Background(), "op", "key")
	if ctx == nil {
		t.Fatal("StartLoad returned nil context")
	}
	tr.EndLoad(span, false, errors.New("ignored"))
}
