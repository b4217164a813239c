package server

import (
	"net/http"

	"github.com/felixge/httpsnoop"

	"github.com/teemow/inboxtriage/internal/instrumentation"
)

// DefaultMCPEndpoint is the path the streamable HTTP transport is mounted on.
const DefaultMCPEndpoint = "/mcp"

// InstrumentHandler records http_requests_total and
// http_request_duration_seconds for every request served by next.
func InstrumentHandler(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	if metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, m.Code, m.Duration)
	})
}

// NewHTTPHandler mounts the MCP handler on DefaultMCPEndpoint and the health
// endpoints next to it.
func NewHTTPHandler(mcpHandler http.Handler, health *HealthChecker, metrics *instrumentation.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(DefaultMCPEndpoint, mcpHandler)
	health.RegisterHealthEndpoints(mux)
	return InstrumentHandler(metrics, mux)
}
