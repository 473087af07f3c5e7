package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestChild_WithoutParentIsNoop(t *testing.T) {
	rec, tp := newRecorder()
	tracer := tp.Tracer("test")

	ctx := context.Background()
	got, span := Child(ctx, tracer, "usecase.ScoringService.PublishWeek")
	span.End()

	require.Equal(t, ctx, got)
	require.Empty(t, rec.Ended())
}

func TestChild_UnderParent(t *testing.T) {
	rec, tp := newRecorder()
	tracer := tp.Tracer("test")

	ctx, root := tracer.Start(context.Background(), "GET /v1/leaderboard")
	_, child := Child(ctx, tracer, "httpapi.Handler.GetLeaderboard", attribute.Int("week_id", 3))
	child.End()
	root.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)
	require.Equal(t, "httpapi.Handler.GetLeaderboard", ended[0].Name())
	require.Equal(t, root.SpanContext().SpanID(), ended[0].Parent().SpanID())
	require.Contains(t, ended[0].Attributes(), attribute.Int("week_id", 3))
}

func TestChild_EmptyName(t *testing.T) {
	rec, tp := newRecorder()
	tracer := tp.Tracer("test")

	ctx, root := tracer.Start(context.Background(), "root")
	_, span := Child(ctx, tracer, "")
	span.End()
	root.End()

	require.Len(t, rec.Ended(), 1)
	require.Equal(t, Noop(), span)
}
