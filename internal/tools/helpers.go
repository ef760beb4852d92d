// Package tools implements the MCP tool handlers wrapping the platform
// clients.
//
// Each tool is a struct holding its client dependency, with a
// Definition for registration and a Handle compatible with mcp-go's
// CallToolRequest signature. One file per service.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v as an indented JSON tool result. Marshal
// failures become tool errors, never panics.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// callFailed wraps a platform error as a tool error result. The error
// text is surfaced to the agent so it can adjust its call.
func callFailed(op string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err))
}
