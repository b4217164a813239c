package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{name: "no account", args: map[string]any{}, expected: ""},
		{name: "nil args", args: nil, expected: ""},
		{name: "account specified", args: map[string]any{"account": "work"}, expected: "work"},
		{name: "account with other params", args: map[string]any{"account": "personal", "folder": "inbox"}, expected: "personal"},
		{name: "non-string account", args: map[string]any{"account": 42}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetAccountFromArgs(tt.args))
		})
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"folder": "starred", "limit": 10.0}

	assert.Equal(t, "starred", StringArg(args, "folder"))
	assert.Empty(t, StringArg(args, "limit"))
	assert.Empty(t, StringArg(args, "missing"))
	assert.Empty(t, StringArg(nil, "folder"))
}
