package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	d := Demo()
	require.NotEmpty(t, d.Messages)
	require.NotEmpty(t, d.Senders)
	require.NotEmpty(t, d.SmartFolders)

	for _, f := range d.SmartFolders {
		assert.Positive(t, f.Count)
		assert.NotEmpty(t, f.ID)
	}
	assert.False(t, d.Messages[0].Date.IsZero())
}

func TestDemo_ReturnsCopies(t *testing.T) {
	d := Demo()
	d.Messages[0].Subject = "changed"
	d.SmartFolders = nil

	again := Demo()
	assert.NotEqual(t, "changed", again.Messages[0].Subject)
	assert.NotEmpty(t, again.SmartFolders)
}

func TestParseDemoFixtures_Invalid(t *testing.T) {
	_, err := ParseDemoFixtures([]byte("messages: [unclosed"))
	assert.Error(t, err)
}
