package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// WorkItemQueryTool handles the wit-query MCP tool.
type WorkItemQueryTool struct {
	client *platform.WorkItemsClient
}

// NewWorkItemQueryTool creates a WorkItemQueryTool with the given client.
func NewWorkItemQueryTool(client *platform.WorkItemsClient) *WorkItemQueryTool {
	return &WorkItemQueryTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkItemQueryTool) Definition() mcp.Tool {
	return mcp.NewTool("wit-query",
		mcp.WithDescription(
			"Run a work-item query and return compact items (id, type, title, "+
				"state, assignee). Use wit-get for a single known id.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Work-item query text"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum items to return (default 50)"),
		),
	)
}

// Handle processes the wit-query tool call.
func (t *WorkItemQueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	top := int(req.GetFloat("top", 50))

	items, err := t.client.Query(ctx, query, top)
	if err != nil {
		return callFailed("querying work items", err), nil
	}
	return jsonResult(items), nil
}

// WorkItemGetTool handles the wit-get MCP tool.
type WorkItemGetTool struct {
	client *platform.WorkItemsClient
}

// NewWorkItemGetTool creates a WorkItemGetTool with the given client.
func NewWorkItemGetTool(client *platform.WorkItemsClient) *WorkItemGetTool {
	return &WorkItemGetTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkItemGetTool) Definition() mcp.Tool {
	return mcp.NewTool("wit-get",
		mcp.WithDescription("Fetch one work item by numeric id."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Work item id"),
		),
	)
}

// Handle processes the wit-get tool call.
func (t *WorkItemGetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int(req.GetFloat("id", 0))
	if id <= 0 {
		return mcp.NewToolResultError("'id' must be a positive work item id"), nil
	}

	item, err := t.client.Get(ctx, id)
	if err != nil {
		return callFailed("fetching work item", err), nil
	}
	return jsonResult(item), nil
}
