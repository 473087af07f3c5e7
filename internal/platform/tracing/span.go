// Package tracing holds the span helpers shared by the HTTP and usecase layers.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noop = trace.SpanFromContext(context.Background())

// Noop returns a span that records nothing.
func Noop() trace.Span {
	return noop
}

// Child starts name under the span already carried by ctx. Without a valid
// parent it returns ctx unchanged and a no-op span, so filtered requests
// such as /healthz never produce root spans from inner layers.
func Child(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noop
	}
	if len(attrs) == 0 {
		return tracer.Start(ctx, name)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
