package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// EntitySetsTool handles the ent-sets MCP tool.
type EntitySetsTool struct {
	client *platform.EntitiesClient
}

// NewEntitySetsTool creates an EntitySetsTool with the given client.
func NewEntitySetsTool(client *platform.EntitiesClient) *EntitySetsTool {
	return &EntitySetsTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *EntitySetsTool) Definition() mcp.Tool {
	return mcp.NewTool("ent-sets",
		mcp.WithDescription(
			"List the entity sets (record collections) available on the platform. "+
				"Use this first to discover what ent-query and ent-record can access.",
		),
	)
}

// Handle processes the ent-sets tool call.
func (t *EntitySetsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets, err := t.client.ListSets(ctx)
	if err != nil {
		return callFailed("listing entity sets", err), nil
	}
	return jsonResult(sets), nil
}

// EntityRecordTool handles the ent-record MCP tool.
type EntityRecordTool struct {
	client *platform.EntitiesClient
}

// NewEntityRecordTool creates an EntityRecordTool with the given client.
func NewEntityRecordTool(client *platform.EntitiesClient) *EntityRecordTool {
	return &EntityRecordTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *EntityRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("ent-record",
		mcp.WithDescription("Fetch a single entity record by set name and record id."),
		mcp.WithString("set",
			mcp.Required(),
			mcp.Description("Entity set name (see ent-sets)"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Record identifier"),
		),
	)
}

// Handle processes the ent-record tool call.
func (t *EntityRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	set := strings.TrimSpace(req.GetString("set", ""))
	id := strings.TrimSpace(req.GetString("id", ""))
	if set == "" || id == "" {
		return mcp.NewToolResultError("'set' and 'id' are required"), nil
	}

	rec, err := t.client.GetRecord(ctx, set, id)
	if err != nil {
		return callFailed("fetching record", err), nil
	}
	return jsonResult(rec), nil
}

// EntityQueryTool handles the ent-query MCP tool.
type EntityQueryTool struct {
	client *platform.EntitiesClient
}

// NewEntityQueryTool creates an EntityQueryTool with the given client.
func NewEntityQueryTool(client *platform.EntitiesClient) *EntityQueryTool {
	return &EntityQueryTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *EntityQueryTool) Definition() mcp.Tool {
	return mcp.NewTool("ent-query",
		mcp.WithDescription(
			"Query records in an entity set with an optional filter expression. "+
				"Returns at most 'top' compact records.",
		),
		mcp.WithString("set",
			mcp.Required(),
			mcp.Description("Entity set name (see ent-sets)"),
		),
		mcp.WithString("filter",
			mcp.Description("Filter expression, e.g. \"status eq 'open'\""),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum records to return (default 25)"),
		),
	)
}

// Handle processes the ent-query tool call.
func (t *EntityQueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	set := strings.TrimSpace(req.GetString("set", ""))
	if set == "" {
		return mcp.NewToolResultError("'set' is required"), nil
	}
	filter := req.GetString("filter", "")
	top := int(req.GetFloat("top", 25))

	recs, err := t.client.QueryRecords(ctx, set, filter, top)
	if err != nil {
		return callFailed("querying records", err), nil
	}
	return jsonResult(recs), nil
}
