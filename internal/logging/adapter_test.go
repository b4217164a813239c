package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSlogAdapter_WithNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.Same(t, slog.Default(), adapter.Logger())
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	var logger Logger = NewSlogAdapter(New(&buf, true))

	logger.Debug("debug message", "key", "d")
	logger.Info("info message", "key", "i")
	logger.Warn("warn message", "key", "w")
	logger.Error("error message", "key", "e")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "debug message", "key=d",
		"level=INFO", "info message",
		"level=WARN", "warn message",
		"level=ERROR", "error message", "key=e",
	} {
		assert.Contains(t, out, want)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.NotNil(t, logger.Logger())
}
