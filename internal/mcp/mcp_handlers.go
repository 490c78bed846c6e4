package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/depmap/core"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleListBranches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	client := contract.NewLocalGitClient()
	branchReport, err := core.ClassifyBranches(ctx, client, cfg.RepoPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("branch classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(branchReport, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCommitHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	branch := request.GetString("branch", "")
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	if branch == "" {
		return mcp.NewToolResultError("branch is required"), nil
	}

	client := contract.NewLocalGitClient()
	commits, err := core.CollectBranchHistory(ctx, client, cfg.RepoPath, branch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history collection failed: %v", err)), nil
	}

	history := schema.BranchHistory{Branch: branch, Commits: commits}
	jsonData, _ := json.MarshalIndent(history, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExtractImports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
		cfg.RepoURL = ""
	}
	if c := request.GetString("from_commit", ""); c != "" {
		cfg.FromCommit = c
	}
	if c := request.GetString("to_commit", ""); c != "" {
		cfg.ToCommit = c
	}

	client := contract.NewLocalGitClient()
	dependencyReport, err := core.ExtractDependencies(ctx, cfg, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import extraction failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(dependencyReport, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleResolveRequirements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("requirements_path", "")
	if path == "" {
		return mcp.NewToolResultError("requirements_path is required"), nil
	}

	versions, err := core.LoadPackageVersions(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("requirements parsing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(versions, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
