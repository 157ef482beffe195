// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docu3c/autocodex/internal/contract"
)

// NewMCPServer initializes and configures the AutoCodex MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"AutoCodex Review Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: review_repository ---
	s.AddTool(mcp.NewTool("review_repository",
		mcp.WithDescription("Fetch a GitHub repository, compute code-quality metrics per file and return the aggregated review report."),
		mcp.WithString("repository", mcp.Description("Repository in owner/repo form."), mcp.Required()),
		mcp.WithNumber("max_files", mcp.Description("Maximum number of files to review (default 20, cap 100).")),
		mcp.WithString("languages", mcp.Description("Comma-separated languages to include (python, java, go, javascript). Defaults to all.")),
		mcp.WithBoolean("no_ai", mcp.Description("Skip generative suggestions and return metrics only.")),
	), h.handleReviewRepository)

	// --- 2. Tool: get_rules ---
	s.AddTool(mcp.NewTool("get_rules",
		mcp.WithDescription("Return the active per-language rule sets and quality-score weights."),
	), h.handleGetRules)

	return s
}

// StartMCPServer starts the AutoCodex MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
