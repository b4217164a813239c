package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttributes(t *testing.T) {
	tests := []struct {
		attr  slog.Attr
		key   string
		value string
	}{
		{Operation("folder"), KeyOperation, "folder"},
		{Source("gmail"), KeySource, "gmail"},
		{Account("work"), KeyAccount, "work"},
		{Tool("triage_stats"), KeyTool, "triage_stats"},
		{Folder("inbox"), KeyFolder, "inbox"},
		{Stat("noise"), KeyStat, "noise"},
		{Count(3), KeyCount, "3"},
		{Duration(2 * time.Second), KeyDuration, "2s"},
		{Status(StatusSuccess), KeyStatus, "success"},
		{SenderDomain("deals@Shop.example"), KeySenderDomain, "shop.example"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.value, tt.attr.Value.String())
		})
	}
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	WithOperation(logger, "stats").Info("a")
	WithTool(logger, "triage_stats").Info("b")
	WithSource(logger, "file").Info("c")
	WithAccount(logger, "work").Info("d")

	out := buf.String()
	assert.Contains(t, out, "operation=stats")
	assert.Contains(t, out, "tool=triage_stats")
	assert.Contains(t, out, "source=file")
	assert.Contains(t, out, "account=work")
}

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	var buf bytes.Buffer
	New(&buf, false).Info("no error", Err(nil))
	assert.NotContains(t, buf.String(), KeyError+"=")
}

func TestAnonymizeEmail(t *testing.T) {
	assert.Empty(t, AnonymizeEmail(""))

	a := AnonymizeEmail("user@example.com")
	assert.True(t, strings.HasPrefix(a, "sender:"))
	assert.NotContains(t, a, "example.com")
	assert.Equal(t, a, AnonymizeEmail("User@Example.com"), "hash is case-insensitive")
	assert.NotEqual(t, a, AnonymizeEmail("other@example.com"))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "example.com", ExtractDomain("user@example.com"))
	assert.Empty(t, ExtractDomain(""))
	assert.Empty(t, ExtractDomain("no-at-sign"))
	assert.Empty(t, ExtractDomain("a@b@c"))
}
