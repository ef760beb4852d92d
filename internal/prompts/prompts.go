// Package prompts implements MCP prompt handlers for common
// operational workflows.
//
// Prompts are user-triggered, unlike tools which the AI calls on its
// own. Each one seeds the conversation with a concrete sequence of
// tool calls against the wrapped platforms.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// TriagePrompt handles the triage-incident MCP prompt. It walks the
// AI through correlating telemetry, work items, and source for an
// incident.
type TriagePrompt struct{}

// NewTriagePrompt creates a TriagePrompt.
func NewTriagePrompt() *TriagePrompt {
	return &TriagePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *TriagePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("triage-incident",
		mcp.WithPromptDescription(
			"Triage a production incident: pull recent telemetry, find "+
				"related work items, and inspect the suspect source.",
		),
		mcp.WithArgument("service",
			mcp.ArgumentDescription("Name of the affected service or component"),
		),
		mcp.WithArgument("timespan",
			mcp.ArgumentDescription("Telemetry window, ISO 8601 duration (default PT1H)"),
		),
	)
}

// Handle processes the triage-incident prompt request.
func (p *TriagePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	service := "the affected service"
	timespan := "PT1H"
	if args := req.Params.Arguments; args != nil {
		if s, ok := args["service"]; ok && s != "" {
			service = s
		}
		if ts, ok := args["timespan"]; ok && ts != "" {
			timespan = ts
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Triage incident in %s", service),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"There is an active incident in %s. Help me triage it:\n\n"+
						"1. Run `tel-query` over timespan '%s' for recent exceptions and failed requests in %s\n"+
						"2. Run `wit-query` for open bugs mentioning %s and summarize any that match the symptoms\n"+
						"3. If the telemetry points at specific code, use `repo-list` and `repo-file` to inspect it\n"+
						"4. Finish with a short assessment: likely cause, blast radius, and the next action you recommend",
					service, timespan, service, service,
				)),
			},
		},
	}, nil
}

// SummaryPrompt handles the workitem-summary MCP prompt.
type SummaryPrompt struct{}

// NewSummaryPrompt creates a SummaryPrompt.
func NewSummaryPrompt() *SummaryPrompt {
	return &SummaryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SummaryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("workitem-summary",
		mcp.WithPromptDescription(
			"Summarize the active work items for a team or area, grouped "+
				"by state, with the stale ones called out.",
		),
		mcp.WithArgument("area",
			mcp.ArgumentDescription("Area path or team name to filter by"),
		),
	)
}

// Handle processes the workitem-summary prompt request.
func (p *SummaryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	area := "the whole project"
	if args := req.Params.Arguments; args != nil {
		if a, ok := args["area"]; ok && a != "" {
			area = a
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Work item summary for %s", area),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Give me a status summary of the active work items for %s.\n\n"+
						"1. Run `wit-query` for non-closed items in %s\n"+
						"2. Group the results by state and by assignee\n"+
						"3. Use `wit-get` on anything that looks stale or blocked and quote its latest state\n"+
						"4. End with a bullet list: items needing attention, items ready to close, unassigned items",
					area, area,
				)),
			},
		},
	}, nil
}
