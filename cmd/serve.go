package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/resources"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/google_tools"
	"github.com/teemow/inboxtriage/internal/tools/triage_tools"
)

// Transports supported by serve.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

type serveOptions struct {
	transport string
	httpAddr  string
	metrics   MetricsConfig
}

func newServeCmd(globals *globalOptions) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide mailbox triage
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp, with /healthz and /readyz

All tools are read-only on the mailbox. Snapshots are fetched from the
configured source (--source, --snapshot, --demo) and cached per account.

Observability:
  Metrics and traces are configured with INSTRUMENTATION_ENABLED,
  METRICS_EXPORTER, TRACING_EXPORTER and OTEL_EXPORTER_OTLP_ENDPOINT.
  With the prometheus exporter, metrics are served on --metrics-addr
  (streamable-http transport only).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := globals.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cfg, opts, globals.logger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.metrics.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// applyMetricsEnv lets METRICS_ENABLED and METRICS_ADDR override values
// still at their defaults.
func applyMetricsEnv(mc *MetricsConfig, getenv func(string) string) {
	if v := getenv("METRICS_ENABLED"); v != "" {
		mc.Enabled = v == "true"
	}
	if mc.Addr == "" || mc.Addr == server.DefaultMetricsAddr {
		if addr := getenv("METRICS_ADDR"); addr != "" {
			mc.Addr = addr
		}
	}
}

func runServe(cfg config.Config, opts serveOptions, logger *slog.Logger) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(logger)

	applyMetricsEnv(&opts.metrics, os.Getenv)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("error during instrumentation shutdown", "error", err)
		}
	}()

	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}
	source, err := newSource(cfg, classifier, logger)
	if err != nil {
		return err
	}

	serverContext, err := server.NewServerContext(shutdownCtx, server.Config{
		Source:         source,
		Classifier:     classifier,
		DemoMode:       cfg.DemoMode,
		DefaultAccount: cfg.Account,
		SnapshotTTL:    cfg.SnapshotTTL,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", "error", err)
		}
	}()

	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging))
	}

	mcpSrv := mcpserver.NewMCPServer("inboxtriage", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)
	if err := triage_tools.RegisterTriageTools(mcpSrv, serverContext); err != nil {
		return err
	}
	if cfg.EffectiveSource() == config.SourceGmail {
		if err := google_tools.RegisterGoogleTools(mcpSrv, serverContext); err != nil {
			return fmt.Errorf("failed to register google tools: %w", err)
		}
	}
	if err := resources.RegisterTriageResources(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}

	logger.Info("starting MCP server",
		"transport", opts.transport,
		"source", serverContext.SourceName(),
		"account", cfg.Account,
		"demo_mode", cfg.DemoMode)

	switch opts.transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportStreamableHTTP:
		metricsServer, err := startMetricsServer(provider, opts.metrics, logger)
		if err != nil {
			return err
		}
		if metricsServer != nil {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := metricsServer.Shutdown(ctx); err != nil {
					logger.Warn("error during metrics server shutdown", "error", err)
				}
			}()
		}
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, opts.httpAddr, provider, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// startMetricsServer starts the Prometheus scrape endpoint when metrics
// are enabled and exported through prometheus. It returns nil otherwise.
func startMetricsServer(provider *instrumentation.Provider, mc MetricsConfig, logger *slog.Logger) (*server.MetricsServer, error) {
	if !mc.Enabled || !provider.ExportsPrometheus() {
		return nil, nil
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    mc.Addr,
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	metricsReady := make(chan struct{})
	metricsErr := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsErr <- err
		}
		close(metricsErr)
	}()

	select {
	case <-metricsReady:
		logger.Info("metrics server started", "addr", metricsServer.Addr())
		return metricsServer, nil
	case err := <-metricsErr:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, addr string, provider *instrumentation.Provider, logger *slog.Logger) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(server.DefaultMCPEndpoint),
	)

	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}

	healthChecker := server.NewHealthChecker(sc)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewHTTPHandler(streamable, healthChecker, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Info("streamable HTTP server listening",
		"addr", addr,
		"endpoint", server.DefaultMCPEndpoint,
		"health", "/healthz, /readyz")

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	healthChecker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
