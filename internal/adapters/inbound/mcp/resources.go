package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/akeso/akeso/internal/adapters/outbound/config"
	"github.com/akeso/akeso/internal/domain/rules"
)

// registerResources registers all akeso MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	// 1. akeso://config - merged configuration
	s.AddResource(
		mcplib.NewResource(
			"akeso://config",
			"Configuration",
			mcplib.WithResourceDescription("Merged .akeso.yaml configuration for the workspace"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleConfigResource,
	)

	// 2. akeso://rules - built-in rules
	s.AddResource(
		mcplib.NewResource(
			"akeso://rules",
			"Rules",
			mcplib.WithResourceDescription("Built-in audit rules with severity and whether they can be healed"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource,
	)
}

func (h *handlers) handleConfigResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	resolver := config.New(h.logger)
	cfg := resolver.Load(h.workspace)

	data, err := json.MarshalIndent(configView{Source: resolver.Source(), Config: cfg}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      "akeso://config",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

type ruleView struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func handleRulesResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	var views []ruleView
	for _, r := range rules.Default() {
		views = append(views, ruleView{ID: r.ID(), Severity: r.Severity(), Description: r.Description()})
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling rules: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      "akeso://rules",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
