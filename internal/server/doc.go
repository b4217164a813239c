// Package server holds the long-lived state of the inboxtriage MCP server
// and its HTTP plumbing.
//
// # Key Components
//
// ServerContext owns the mailbox source, a per-account snapshot cache with
// a TTL, and per-account sender selections. Concurrent requests for the
// same account share one in-flight fetch. Every fetch is traced as
// mailbox.<source>.fetch and recorded in mailbox_fetch_total.
//
// HealthChecker serves /healthz, /readyz and /healthz/detailed next to the
// streamable HTTP MCP endpoint (NewHTTPHandler).
//
// MetricsServer exposes the Prometheus registry on a dedicated port.
package server
