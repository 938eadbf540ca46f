package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnsureRequestMetaGeneratesID(t *testing.T) {
	ctx, meta := EnsureRequestMeta(context.Background(), "", "fieldedge_get_job")
	require.NotEmpty(t, meta.RequestID)
	require.Equal(t, "fieldedge_get_job", meta.Tool)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, meta.RequestID, got)
}

func TestEnsureRequestMetaUsesProvidedID(t *testing.T) {
	ctx, meta := EnsureRequestMeta(context.Background(), "req-123", "")
	require.Equal(t, "req-123", meta.RequestID)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "req-123", got)
}

func TestEnsureRequestMetaKeepsExistingID(t *testing.T) {
	ctx := WithRequestMeta(context.Background(), RequestMeta{RequestID: "outer"})
	_, meta := EnsureRequestMeta(ctx, "", "fieldedge_list_jobs")
	require.Equal(t, "outer", meta.RequestID)
	require.Equal(t, "fieldedge_list_jobs", meta.Tool)
}

func TestTraceSpanFromContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	gotTraceID, gotSpanID := TraceSpanFromContext(ctx)
	require.Equal(t, traceID.String(), gotTraceID)
	require.Equal(t, spanID.String(), gotSpanID)
}

func TestRequestFields(t *testing.T) {
	fields := RequestFields(RequestMeta{
		RequestID: "req-1",
		TraceID:   "trace-1",
		SpanID:    "span-1",
		Tool:      "fieldedge_get_customer",
	})
	require.Len(t, fields, 4)
	require.Equal(t, FieldTool, fields[0].Key)
	require.Equal(t, FieldRequestID, fields[1].Key)
	require.Equal(t, FieldTraceID, fields[2].Key)
	require.Equal(t, FieldSpanID, fields[3].Key)
}

func TestLoggerWithRequest(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithRequestMeta(context.Background(), RequestMeta{RequestID: "req-9"})

	LoggerWithRequest(ctx, zap.New(core)).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "req-9", entries[0].ContextMap()[FieldRequestID])
}
