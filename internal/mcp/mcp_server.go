// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Depmap MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Depmap Mining Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: list_branches ---
	s.AddTool(mcp.NewTool("list_branches",
		mcp.WithDescription("Classify repository branches into merged and unmerged sets relative to the checked-out branch."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository if not specified).")),
	), h.handleListBranches)

	// --- 2. Tool: commit_history ---
	s.AddTool(mcp.NewTool("commit_history",
		mcp.WithDescription("Walk a branch and return its commits with per-file insertion and deletion counts."),
		mcp.WithString("branch", mcp.Description("The branch to walk."), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleCommitHistory)

	// --- 3. Tool: extract_imports ---
	s.AddTool(mcp.NewTool("extract_imports",
		mcp.WithDescription("Walk the commit history oldest-first and accumulate Python import statements per tracked file."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("from_commit", mcp.Description("Commit SHA or unique prefix that starts the walk (inclusive).")),
		mcp.WithString("to_commit", mcp.Description("Commit SHA or unique prefix that ends the walk (inclusive).")),
	), h.handleExtractImports)

	// --- 4. Tool: resolve_requirements ---
	s.AddTool(mcp.NewTool("resolve_requirements",
		mcp.WithDescription("Parse a pip requirements file into a package-to-version table."),
		mcp.WithString("requirements_path", mcp.Description("Path to the requirements file."), mcp.Required()),
	), h.handleResolveRequirements)

	return s
}

// StartMCPServer starts the Depmap MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
