package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// SQLTablesTool handles the sql-tables MCP tool.
type SQLTablesTool struct {
	client *platform.SQLMetaClient
}

// NewSQLTablesTool creates a SQLTablesTool with the given client.
func NewSQLTablesTool(client *platform.SQLMetaClient) *SQLTablesTool {
	return &SQLTablesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *SQLTablesTool) Definition() mcp.Tool {
	return mcp.NewTool("sql-tables",
		mcp.WithDescription("List database tables, optionally limited to one schema. Read-only metadata; no query execution."),
		mcp.WithString("schema",
			mcp.Description("Schema name to filter by (default: all schemas)"),
		),
	)
}

// Handle processes the sql-tables tool call.
func (t *SQLTablesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema := req.GetString("schema", "")

	tables, err := t.client.ListTables(ctx, schema)
	if err != nil {
		return callFailed("listing tables", err), nil
	}
	return jsonResult(tables), nil
}

// SQLDescribeTool handles the sql-describe MCP tool.
type SQLDescribeTool struct {
	client *platform.SQLMetaClient
}

// NewSQLDescribeTool creates a SQLDescribeTool with the given client.
func NewSQLDescribeTool(client *platform.SQLMetaClient) *SQLDescribeTool {
	return &SQLDescribeTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *SQLDescribeTool) Definition() mcp.Tool {
	return mcp.NewTool("sql-describe",
		mcp.WithDescription("Describe the columns of one table (name, type, nullability)."),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema name, e.g. dbo"),
		),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table name"),
		),
	)
}

// Handle processes the sql-describe tool call.
func (t *SQLDescribeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema := strings.TrimSpace(req.GetString("schema", ""))
	table := strings.TrimSpace(req.GetString("table", ""))
	if schema == "" || table == "" {
		return mcp.NewToolResultError("'schema' and 'table' are required"), nil
	}

	cols, err := t.client.DescribeTable(ctx, schema, table)
	if err != nil {
		return callFailed("describing table", err), nil
	}
	return jsonResult(cols), nil
}
