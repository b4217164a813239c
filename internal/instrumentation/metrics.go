package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrSource    = "source"
	attrResult    = "result"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics provides methods for recording observability metrics.
// The zero value records nothing, which is what a disabled Provider returns.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Mailbox metrics
	mailboxFetchTotal    metric.Int64Counter
	mailboxFetchDuration metric.Float64Histogram
	snapshotCacheTotal   metric.Int64Counter

	// Pipeline metrics
	pipelineOperationsTotal metric.Int64Counter
	pipelineItems           metric.Int64Histogram

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels adds the account label to tool metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all instruments registered on meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.mailboxFetchTotal, err = meter.Int64Counter(
		"mailbox_fetch_total",
		metric.WithDescription("Total number of mailbox snapshot fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox_fetch_total counter: %w", err)
	}

	m.mailboxFetchDuration, err = meter.Float64Histogram(
		"mailbox_fetch_duration_seconds",
		metric.WithDescription("Mailbox snapshot fetch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox_fetch_duration_seconds histogram: %w", err)
	}

	m.snapshotCacheTotal, err = meter.Int64Counter(
		"mailbox_snapshot_cache_total",
		metric.WithDescription("Snapshot cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox_snapshot_cache_total counter: %w", err)
	}

	m.pipelineOperationsTotal, err = meter.Int64Counter(
		"triage_pipeline_operations_total",
		metric.WithDescription("Total number of triage pipeline operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create triage_pipeline_operations_total counter: %w", err)
	}

	m.pipelineItems, err = meter.Int64Histogram(
		"triage_pipeline_items",
		metric.WithDescription("Number of items returned by a triage pipeline operation"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500, 1000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create triage_pipeline_items histogram: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
// Unknown paths are folded into a single label value.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, NormalizePath(path)),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordMailboxFetch records one snapshot fetch from a mailbox source.
//
// Parameters:
//   - source: mailbox source name (gmail, file, demo)
//   - status: "success" or "error"
//   - duration: time taken to build the snapshot
func (m *Metrics) RecordMailboxFetch(ctx context.Context, source, status string, duration time.Duration) {
	if m == nil || m.mailboxFetchTotal == nil || m.mailboxFetchDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrStatus, status),
	}

	m.mailboxFetchTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.mailboxFetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSnapshotCache records a snapshot cache lookup. Result is CacheHit or CacheMiss.
func (m *Metrics) RecordSnapshotCache(ctx context.Context, result string) {
	if m == nil || m.snapshotCacheTotal == nil {
		return
	}

	m.snapshotCacheTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordPipelineOperation records one run of a triage pipeline operation and
// the number of items it produced.
func (m *Metrics) RecordPipelineOperation(ctx context.Context, operation string, items int) {
	if m == nil || m.pipelineOperationsTotal == nil || m.pipelineItems == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrOperation, NormalizeOperation(operation)))

	m.pipelineOperationsTotal.Add(ctx, 1, attrs)
	m.pipelineItems.Record(ctx, int64(items), attrs)
}

// RecordToolInvocationWithAccount records an MCP tool invocation with account info.
// The account label is only attached when detailed labels are enabled.
func (m *Metrics) RecordToolInvocationWithAccount(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
