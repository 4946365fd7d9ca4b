package mcp

import (
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/logging"
)

// NewAkesoMCPServer creates an MCP server with all akeso tools and resources
// registered. Every tool is read-only and scoped to workspace.
func NewAkesoMCPServer(workspace, version string, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"akeso",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	if abs, err := filepath.Abs(workspace); err == nil {
		workspace = abs
	}
	h := &handlers{workspace: workspace, version: version, logger: logging.OrNop(logger)}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
