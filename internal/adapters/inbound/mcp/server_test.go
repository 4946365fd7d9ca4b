package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/akeso/akeso/internal/adapters/inbound/mcp"
)

func TestNewAkesoMCPServer(t *testing.T) {
	s := mcpadapter.NewAkesoMCPServer(t.TempDir(), "test", nil)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewAkesoMCPServer(t.TempDir(), "test", nil)
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"akeso_scan",
		"akeso_diff",
		"akeso_config",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
