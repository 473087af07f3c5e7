package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/rl-fantasy/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("rl-fantasy/internal/interfaces/httpapi")

// startSpan only records handler spans; middleware and helpers ride on the
// request span opened by RequestTracing.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, tracing.Noop()
	}
	return tracing.Child(ctx, apiTracer, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
