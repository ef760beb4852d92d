package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// LibraryListTool handles the lib-list MCP tool.
type LibraryListTool struct {
	client *platform.FilesClient
}

// NewLibraryListTool creates a LibraryListTool with the given client.
func NewLibraryListTool(client *platform.FilesClient) *LibraryListTool {
	return &LibraryListTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *LibraryListTool) Definition() mcp.Tool {
	return mcp.NewTool("lib-list",
		mcp.WithDescription("List the document libraries available for browsing."),
	)
}

// Handle processes the lib-list tool call.
func (t *LibraryListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	libs, err := t.client.ListLibraries(ctx)
	if err != nil {
		return callFailed("listing libraries", err), nil
	}
	return jsonResult(libs), nil
}

// LibraryFilesTool handles the lib-files MCP tool.
type LibraryFilesTool struct {
	client *platform.FilesClient
}

// NewLibraryFilesTool creates a LibraryFilesTool with the given client.
func NewLibraryFilesTool(client *platform.FilesClient) *LibraryFilesTool {
	return &LibraryFilesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *LibraryFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("lib-files",
		mcp.WithDescription("List files and folders in a library, optionally under one folder."),
		mcp.WithString("library",
			mcp.Required(),
			mcp.Description("Library name (see lib-list)"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder path inside the library (default: root)"),
		),
	)
}

// Handle processes the lib-files tool call.
func (t *LibraryFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	library := strings.TrimSpace(req.GetString("library", ""))
	if library == "" {
		return mcp.NewToolResultError("'library' is required"), nil
	}
	folder := req.GetString("folder", "")

	items, err := t.client.ListItems(ctx, library, folder)
	if err != nil {
		return callFailed("listing files", err), nil
	}
	return jsonResult(items), nil
}

// LibraryInfoTool handles the lib-info MCP tool.
type LibraryInfoTool struct {
	client *platform.FilesClient
}

// NewLibraryInfoTool creates a LibraryInfoTool with the given client.
func NewLibraryInfoTool(client *platform.FilesClient) *LibraryInfoTool {
	return &LibraryInfoTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *LibraryInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("lib-info",
		mcp.WithDescription("Fetch the metadata of one file (size, modified time) without its content."),
		mcp.WithString("library",
			mcp.Required(),
			mcp.Description("Library name (see lib-list)"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path inside the library"),
		),
	)
}

// Handle processes the lib-info tool call.
func (t *LibraryInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	library := strings.TrimSpace(req.GetString("library", ""))
	path := strings.TrimSpace(req.GetString("path", ""))
	if library == "" || path == "" {
		return mcp.NewToolResultError("'library' and 'path' are required"), nil
	}

	item, err := t.client.ItemInfo(ctx, library, path)
	if err != nil {
		return callFailed("fetching file info", err), nil
	}
	return jsonResult(item), nil
}
