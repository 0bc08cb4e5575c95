package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing with per-call span management for
// protected operations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndCall must be best-effort and must not panic.
type Tracer interface {
	// StartCall starts a new span for one protected call.
	StartCall(ctx context.Context, operation string) (context.Context, trace.Span)

	// EndCall ends the span, recording any error.
	EndCall(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer over the given OpenTelemetry tracer.
func NewTracer(tracer trace.Tracer) Tracer {
	return &tracerImpl{tracer: tracer}
}

// StartCall starts a span named resilience.exec.<operation>.
func (t *tracerImpl) StartCall(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "resilience.exec."+operation,
		trace.WithAttributes(attribute.String("operation", operation)),
	)
}

// EndCall ends the span, recording error status if err is non-nil.
func (t *tracerImpl) EndCall(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// nopTracer produces no-op spans.
type nopTracer struct {
	tracer trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &nopTracer{tracer: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *nopTracer) StartCall(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, operation)
}

func (t *nopTracer) EndCall(span trace.Span, err error) {
	span.End()
}
