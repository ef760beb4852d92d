package tools

import (
	"context"
	"strings"

	"opsmcp/internal/platform"

	"github.com/mark3labs/mcp-go/mcp"
)

// TelemetryQueryTool handles the tel-query MCP tool.
type TelemetryQueryTool struct {
	client *platform.TelemetryClient
}

// NewTelemetryQueryTool creates a TelemetryQueryTool with the given client.
func NewTelemetryQueryTool(client *platform.TelemetryClient) *TelemetryQueryTool {
	return &TelemetryQueryTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *TelemetryQueryTool) Definition() mcp.Tool {
	return mcp.NewTool("tel-query",
		mcp.WithDescription(
			"Run a telemetry query over a timespan and return the primary "+
				"result table as columns and rows. Keep queries narrow; "+
				"results are capped by the platform.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Telemetry query text"),
		),
		mcp.WithString("timespan",
			mcp.Description("ISO-8601 duration to look back, e.g. PT1H (default PT24H)"),
		),
	)
}

// Handle processes the tel-query tool call.
func (t *TelemetryQueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	timespan := req.GetString("timespan", "PT24H")

	table, err := t.client.Query(ctx, query, timespan)
	if err != nil {
		return callFailed("running telemetry query", err), nil
	}
	return jsonResult(table), nil
}
