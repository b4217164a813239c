// Package instrumentation provides OpenTelemetry metrics and tracing for the
// inboxtriage MCP server and CLI.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Mailbox Metrics:
//   - mailbox_fetch_total: Counter of snapshot fetches by source and status
//   - mailbox_fetch_duration_seconds: Histogram of snapshot fetch durations
//   - mailbox_snapshot_cache_total: Counter of snapshot cache lookups by result
//
// Pipeline Metrics:
//   - triage_pipeline_operations_total: Counter of pipeline operations by operation
//   - triage_pipeline_items: Histogram of result sizes by operation
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// Label values that come from callers (paths, operations) are folded into
// "other" when unknown. The account label is only attached to tool metrics
// when METRICS_DETAILED_LABELS is set.
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and mailbox
// snapshot fetches (mailbox.<source>.fetch).
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: inboxtriage)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_ARGUMENTS: tool audit log
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordMailboxFetch(ctx, "gmail", instrumentation.StatusSuccess, time.Since(start))
//	provider.Metrics().RecordPipelineOperation(ctx, instrumentation.OperationFolder, len(messages))
package instrumentation
