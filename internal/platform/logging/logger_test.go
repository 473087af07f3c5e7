package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"loud":    LevelInfo,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestLogger_KeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("service", "rl-fantasy-api")

	logger.Warn("transfer rejected", "roster_id", "r-1", "error", errors.New("budget"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	require.Equal(t, "rl-fantasy-api", ctx["service"])
	require.Equal(t, "r-1", ctx["roster_id"])
	require.Equal(t, "budget", ctx["error"])
	require.Contains(t, ctx, "dangling")
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "week published", "week_id", 3)
	logger.DebugContext(ctx, "filtered out")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, traceID.String(), fields["trace_id"])
	require.Equal(t, spanID.String(), fields["span_id"])
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.Info("http server starting", "addr", ":8080")
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "http server starting", line["msg"])
	require.Equal(t, ":8080", line["addr"])
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	require.NotPanics(t, func() { logger.Info("nothing configured") })
	require.NotNil(t, logger.With("k", "v"))
}
