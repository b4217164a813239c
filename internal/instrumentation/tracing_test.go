package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs a recording tracer provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		out[string(attr.Key)] = attr.Value.AsInterface()
	}
	return out
}

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("triage_list_folder").
		WithAccount("work").
		WithSource("gmail").
		WithOperation(OperationFolder).
		WithReadOnly(true).
		Build()

	assert.Equal(t, map[string]any{
		SpanAttrTool:      "triage_list_folder",
		SpanAttrAccount:   "work",
		SpanAttrSource:    "gmail",
		SpanAttrOperation: "folder",
		SpanAttrReadOnly:  true,
	}, attrMap(attrs))
}

func TestSpanAttributeBuilder_EmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("triage_stats").
		WithAccount("").
		WithSource("").
		WithOperation("").
		Build()

	assert.Len(t, attrs, 1)
}

func TestStartToolSpan(t *testing.T) {
	recorder := recordSpans(t)

	ctx, span := StartToolSpan(context.Background(), "triage_stats", attribute.String("extra", "x"))
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))
	SetSpanSuccess(span)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "tool.triage_stats", ended[0].Name())
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Equal(t, "triage_stats", attrMap(ended[0].Attributes())[SpanAttrTool])
	assert.Equal(t, "x", attrMap(ended[0].Attributes())["extra"])
}

func TestStartMailboxFetchSpan(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartMailboxFetchSpan(context.Background(), "gmail", "work")
	SetSpanError(span, errors.New("quota exceeded"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "mailbox.gmail.fetch", ended[0].Name())
	assert.Equal(t, trace.SpanKindClient, ended[0].SpanKind())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "quota exceeded", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "gmail", attrs[SpanAttrSource])
	assert.Equal(t, "work", attrs[SpanAttrAccount])
}

func TestStartSpan_Event(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartSpan(context.Background(), "snapshot.refresh")
	AddSpanEvent(span, "cache_invalidated", attribute.String(SpanAttrAccount, "default"))
	SetSpanError(span, nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "cache_invalidated", ended[0].Events()[0].Name)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
}

func TestTraceIDs_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
