package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// RepoListTool handles the repo-list MCP tool.
type RepoListTool struct {
	client *platform.ReposClient
}

// NewRepoListTool creates a RepoListTool with the given client.
func NewRepoListTool(client *platform.ReposClient) *RepoListTool {
	return &RepoListTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *RepoListTool) Definition() mcp.Tool {
	return mcp.NewTool("repo-list",
		mcp.WithDescription("List the browsable repositories with their default branches."),
	)
}

// Handle processes the repo-list tool call.
func (t *RepoListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, err := t.client.ListRepos(ctx)
	if err != nil {
		return callFailed("listing repos", err), nil
	}
	return jsonResult(repos), nil
}

// RepoBranchesTool handles the repo-branches MCP tool.
type RepoBranchesTool struct {
	client *platform.ReposClient
}

// NewRepoBranchesTool creates a RepoBranchesTool with the given client.
func NewRepoBranchesTool(client *platform.ReposClient) *RepoBranchesTool {
	return &RepoBranchesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *RepoBranchesTool) Definition() mcp.Tool {
	return mcp.NewTool("repo-branches",
		mcp.WithDescription("List the branches of one repository."),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name (see repo-list)"),
		),
	)
}

// Handle processes the repo-branches tool call.
func (t *RepoBranchesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo := strings.TrimSpace(req.GetString("repo", ""))
	if repo == "" {
		return mcp.NewToolResultError("'repo' is required"), nil
	}

	branches, err := t.client.ListBranches(ctx, repo)
	if err != nil {
		return callFailed("listing branches", err), nil
	}
	return jsonResult(branches), nil
}

// RepoFileTool handles the repo-file MCP tool.
type RepoFileTool struct {
	client *platform.ReposClient
}

// NewRepoFileTool creates a RepoFileTool with the given client.
func NewRepoFileTool(client *platform.ReposClient) *RepoFileTool {
	return &RepoFileTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *RepoFileTool) Definition() mcp.Tool {
	return mcp.NewTool("repo-file",
		mcp.WithDescription("Fetch one file's content from a repository at an optional ref."),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name (see repo-list)"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path inside the repository"),
		),
		mcp.WithString("ref",
			mcp.Description("Branch, tag, or commit (default: the default branch)"),
		),
	)
}

// Handle processes the repo-file tool call.
func (t *RepoFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo := strings.TrimSpace(req.GetString("repo", ""))
	path := strings.TrimSpace(req.GetString("path", ""))
	if repo == "" || path == "" {
		return mcp.NewToolResultError("'repo' and 'path' are required"), nil
	}
	ref := req.GetString("ref", "")

	file, err := t.client.GetFile(ctx, repo, ref, path)
	if err != nil {
		return callFailed("fetching file", err), nil
	}
	return jsonResult(file), nil
}
