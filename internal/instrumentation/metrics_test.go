package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailedLabels bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = meterProvider.Shutdown(context.Background()) })

	m, err := NewMetrics(meterProvider.Meter("test"), detailedLabels)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterValue(t *testing.T, m metricdata.Metrics, kvs ...attribute.KeyValue) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", m.Name)

	want := attribute.NewSet(kvs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestMetrics_RecordPipelineOperation(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordPipelineOperation(ctx, OperationFolder, 4)
	m.RecordPipelineOperation(ctx, OperationFolder, 0)
	m.RecordPipelineOperation(ctx, "archive", 1)

	got := collect(t, reader)

	ops := got["triage_pipeline_operations_total"]
	assert.Equal(t, int64(2), counterValue(t, ops, attribute.String("operation", "folder")))
	assert.Equal(t, int64(1), counterValue(t, ops, attribute.String("operation", LabelOther)))

	items, ok := got["triage_pipeline_items"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range items.DataPoints {
		total += dp.Sum
	}
	assert.Equal(t, int64(5), total)
}

func TestMetrics_RecordMailboxFetch(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordMailboxFetch(ctx, "gmail", StatusSuccess, 200*time.Millisecond)
	m.RecordMailboxFetch(ctx, "gmail", StatusError, time.Second)
	m.RecordMailboxFetch(ctx, "demo", StatusSuccess, time.Millisecond)

	got := collect(t, reader)
	fetches := got["mailbox_fetch_total"]

	assert.Equal(t, int64(1), counterValue(t, fetches,
		attribute.String("source", "gmail"), attribute.String("status", StatusSuccess)))
	assert.Equal(t, int64(1), counterValue(t, fetches,
		attribute.String("source", "gmail"), attribute.String("status", StatusError)))
	assert.Equal(t, int64(1), counterValue(t, fetches,
		attribute.String("source", "demo"), attribute.String("status", StatusSuccess)))
	assert.Contains(t, got, "mailbox_fetch_duration_seconds")
}

func TestMetrics_RecordSnapshotCache(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordSnapshotCache(ctx, CacheMiss)
	m.RecordSnapshotCache(ctx, CacheHit)
	m.RecordSnapshotCache(ctx, CacheHit)

	lookups := collect(t, reader)["mailbox_snapshot_cache_total"]
	assert.Equal(t, int64(2), counterValue(t, lookups, attribute.String("result", CacheHit)))
	assert.Equal(t, int64(1), counterValue(t, lookups, attribute.String("result", CacheMiss)))
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 100*time.Millisecond)
	m.RecordHTTPRequest(ctx, "GET", "/random/path", 404, time.Millisecond)

	requests := collect(t, reader)["http_requests_total"]
	assert.Equal(t, int64(1), counterValue(t, requests,
		attribute.String("method", "POST"), attribute.String("path", "/mcp"), attribute.String("status", "200")))
	assert.Equal(t, int64(1), counterValue(t, requests,
		attribute.String("method", "GET"), attribute.String("path", LabelOther), attribute.String("status", "404")))
}

func TestMetrics_ToolInvocationAccountLabel(t *testing.T) {
	tests := []struct {
		name           string
		detailedLabels bool
		expected       []attribute.KeyValue
	}{
		{
			name: "account dropped by default",
			expected: []attribute.KeyValue{
				attribute.String("tool", "triage_stats"),
				attribute.String("status", StatusSuccess),
			},
		},
		{
			name:           "account kept with detailed labels",
			detailedLabels: true,
			expected: []attribute.KeyValue{
				attribute.String("tool", "triage_stats"),
				attribute.String("status", StatusSuccess),
				attribute.String("account", "work"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, reader := newTestMetrics(t, tt.detailedLabels)
			m.RecordToolInvocationWithAccount(context.Background(), "triage_stats", StatusSuccess, "work", 10*time.Millisecond)

			invocations := collect(t, reader)["mcp_tool_invocations_total"]
			assert.Equal(t, int64(1), counterValue(t, invocations, tt.expected...))
		})
	}
}

func TestMetrics_ZeroValueIsNoop(t *testing.T) {
	m := &Metrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(ctx, "GET", "/mcp", 200, time.Millisecond)
		m.RecordMailboxFetch(ctx, "file", StatusError, time.Millisecond)
		m.RecordSnapshotCache(ctx, CacheHit)
		m.RecordPipelineOperation(ctx, OperationStats, 2)
		m.RecordToolInvocationWithAccount(ctx, "triage_stats", StatusSuccess, "work", time.Millisecond)
	})
}
