// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (opsmcp://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"opsmcp/internal/audit"

	"github.com/mark3labs/mcp-go/mcp"
)

// recentLimit bounds the audit entries exposed through the resource.
const recentLimit = 50

// Handler manages the server's resource endpoints.
type Handler struct {
	log *audit.Log
}

// NewHandler creates a resource Handler over the audit log.
func NewHandler(log *audit.Log) *Handler {
	return &Handler{log: log}
}

// AuditResource returns the MCP resource definition for the recent
// call log.
func (h *Handler) AuditResource() mcp.Resource {
	return mcp.NewResource(
		"opsmcp://audit/recent",
		"Recent platform calls",
		mcp.WithResourceDescription("The most recent platform API calls made by this server, newest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleAudit returns the recent audit entries as JSON.
func (h *Handler) HandleAudit(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.log == nil {
		return errorResource(req.Params.URI, "audit log is not available"), nil
	}

	records, err := h.log.Recent(recentLimit)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling audit records: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource carrying an error message instead
// of failing the read.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
