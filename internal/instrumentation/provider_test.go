package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProviderConfig(metrics, tracing string) Config {
	return Config{
		ServiceName:     "inboxtriage-test",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: metrics,
		TracingExporter: tracing,
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{ServiceName: "inboxtriage-test"})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.False(t, provider.ExportsPrometheus())
	require.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.Tracer("test"))

	// Recording on the no-op metrics must not panic.
	provider.Metrics().RecordPipelineOperation(context.Background(), OperationFolder, 3)
	provider.Metrics().RecordMailboxFetch(context.Background(), "demo", StatusSuccess, time.Millisecond)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_PrometheusExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testProviderConfig(ExporterPrometheus, ExporterNone))
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.True(t, provider.ExportsPrometheus())
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.Tracer("test"))
}

func TestNewProvider_StdoutExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testProviderConfig(ExporterStdout, ExporterStdout))
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.False(t, provider.ExportsPrometheus())
}

func TestNewProvider_InvalidExporters(t *testing.T) {
	tests := []struct {
		name    string
		metrics string
		tracing string
	}{
		{name: "invalid metrics exporter", metrics: "invalid", tracing: ExporterNone},
		{name: "invalid tracing exporter", metrics: ExporterPrometheus, tracing: "invalid"},
		{name: "otlp tracing without endpoint", metrics: ExporterPrometheus, tracing: ExporterOTLP},
		{name: "otlp metrics without endpoint", metrics: ExporterOTLP, tracing: ExporterNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_, err := NewProvider(ctx, testProviderConfig(tt.metrics, tt.tracing))
			assert.Error(t, err)
		})
	}
}

func TestProvider_Shutdown(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, testProviderConfig(ExporterPrometheus, ExporterNone))
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(ctx))
}
