package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_HasRunE(t *testing.T) {
	assert.NotNil(t, tuiCmd.RunE)
}

func TestTUIPorts(t *testing.T) {
	ts := setupTestServices(t)

	ports, err := tuiPorts()

	require.NoError(t, err)
	require.NoError(t, ports.Validate())
	assert.NotNil(t, ports.Session)
	assert.Equal(t, ts.Catalog, ports.Catalog)
	assert.Equal(t, ts.Ingest, ports.Ingest)
	assert.Equal(t, ts.Index, ports.Index)
	assert.Equal(t, ts.Settings, ports.Settings)
}

func TestTUIPorts_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := tuiPorts()

	assert.Error(t, err)
}
