package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/adapters/outbound/config"
	"github.com/akeso/akeso/internal/adapters/outbound/gitinfo"
	"github.com/akeso/akeso/internal/adapters/outbound/reporter"
	"github.com/akeso/akeso/internal/adapters/outbound/store"
	"github.com/akeso/akeso/internal/adapters/outbound/tui"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
)

type handlers struct {
	workspace string
	version   string
	logger    *zap.Logger
}

// registerTools registers all akeso MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. akeso_scan
	s.AddTool(
		mcplib.NewTool("akeso_scan",
			mcplib.WithDescription("Audit manifests (read-only) and return the JSON report with proposed repairs"),
			mcplib.WithString("path", mcplib.Description("File or directory relative to the workspace (default: workspace root)")),
			mcplib.WithString("ext", mcplib.Description("Comma-separated extensions to crawl (default: yaml,yml)")),
			mcplib.WithNumber("max_depth", mcplib.Description("Maximum directory depth to crawl (default: 10)")),
		),
		h.handleScan,
	)

	// 2. akeso_diff
	s.AddTool(
		mcplib.NewTool("akeso_diff",
			mcplib.WithDescription("Return the unified diff between a file and its proposed repair"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the manifest relative to the workspace"),
			),
		),
		h.handleDiff,
	)

	// 3. akeso_config
	s.AddTool(
		mcplib.NewTool("akeso_config",
			mcplib.WithDescription("Return the merged configuration in effect for the workspace"),
		),
		h.handleConfig,
	)
}

// newEngine wires a dry-run capable engine for the workspace.
func (h *handlers) newEngine() (*application.HealEngine, *config.Resolver) {
	resolver := config.New(h.logger)
	resolver.Load(h.workspace)
	st := store.New(h.workspace, h.logger)
	return application.NewHealEngine(st, resolver, domain.DefaultHealOptions(), h.logger), resolver
}

func (h *handlers) handleScan(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	rawPath, _ := args["path"].(string)
	rawExt, _ := args["ext"].(string)

	path, err := h.resolve(rawPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	exts := domain.SplitExtensions(rawExt)
	if len(exts) == 0 {
		exts = domain.DefaultExtensions
	}
	maxDepth := domain.DefaultMaxDepth
	if d, ok := args["max_depth"].(float64); ok {
		maxDepth = int(d)
	}

	engine, resolver := h.newEngine()
	reporters := map[domain.OutputFormat]domain.Reporter{domain.OutputJSON: reporter.NewJSON(h.version)}
	svc := application.NewScanService(engine, reporters, tui.Presenter{}, h.logger)

	commit, _ := gitinfo.New().CommitHash(h.workspace)
	var out bytes.Buffer
	_, err = svc.Run(application.ScanRequest{
		Path:       path,
		Extensions: exts,
		MaxDepth:   maxDepth,
		Output:     domain.OutputJSON,
		Workspace:  h.workspace,
		CommitHash: commit,
		Threshold:  resolver.Threshold(),
	}, strings.NewReader(""), &out)
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return textResult(strings.TrimSpace(out.String())), nil
}

func (h *handlers) handleDiff(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	path, err := h.resolve(file)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	engine, _ := h.newEngine()
	rec := engine.AuditAndHealFile(path, true)
	if rec.Error != "" {
		return errorResult(rec.Error), nil
	}
	if !rec.HasChange() {
		return textResult("No changes for " + file), nil
	}

	unified := tui.UnifiedDiff(rec.RawContent, *rec.HealedContent)
	if stats, err := tui.ComputeDiffStats(unified); err == nil {
		unified += stats.String() + "\n"
	}
	return textResult(unified), nil
}

func (h *handlers) handleConfig(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	resolver := config.New(h.logger)
	cfg := resolver.Load(h.workspace)
	return jsonResult(configView{Source: resolver.Source(), Config: cfg})
}

type configView struct {
	Source string        `json:"source,omitempty"`
	Config domain.Config `json:"config"`
}

// resolve interprets p relative to the workspace. Empty means the workspace
// itself. Paths that leave the workspace are rejected.
func (h *handlers) resolve(p string) (string, error) {
	if p == "" {
		return h.workspace, nil
	}
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(h.workspace, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(h.workspace, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the workspace", p)
	}
	return abs, nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
