package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/inboxtriage/internal/server"
)

func TestApplyMetricsEnv(t *testing.T) {
	tests := []struct {
		name     string
		initial  MetricsConfig
		env      map[string]string
		expected MetricsConfig
	}{
		{
			name:     "no env keeps flags",
			initial:  MetricsConfig{Enabled: true, Addr: server.DefaultMetricsAddr},
			expected: MetricsConfig{Enabled: true, Addr: server.DefaultMetricsAddr},
		},
		{
			name:     "env disables metrics",
			initial:  MetricsConfig{Enabled: true, Addr: server.DefaultMetricsAddr},
			env:      map[string]string{"METRICS_ENABLED": "false"},
			expected: MetricsConfig{Enabled: false, Addr: server.DefaultMetricsAddr},
		},
		{
			name:     "env address replaces default",
			initial:  MetricsConfig{Enabled: true, Addr: server.DefaultMetricsAddr},
			env:      map[string]string{"METRICS_ADDR": ":9191"},
			expected: MetricsConfig{Enabled: true, Addr: ":9191"},
		},
		{
			name:     "explicit address wins over env",
			initial:  MetricsConfig{Enabled: true, Addr: ":7070"},
			env:      map[string]string{"METRICS_ADDR": ":9191"},
			expected: MetricsConfig{Enabled: true, Addr: ":7070"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := tt.initial
			applyMetricsEnv(&mc, func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.expected, mc)
		})
	}
}

func TestServe_UnsupportedTransport(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	_, err := executeCommand(t, "serve", "--demo", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unsupported transport type")
}
