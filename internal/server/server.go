// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it opens the shared stores, builds the
// per-platform clients, and registers tools, prompts, and resources.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log/slog"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
	"opsmcp/internal/platform"
	"opsmcp/internal/prompts"
	"opsmcp/internal/resources"
	"opsmcp/internal/tools"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with every enabled
// platform's tools registered. Services without a base_url are skipped
// with a warning; the server still starts with whatever remains.
//
// The returned cleanup function closes the cache and audit databases
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call even when store init failed.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	// --- Shared stores ---
	//
	// Cache and audit are conveniences, not requirements: if either
	// fails to open the clients run without it.

	var cs *cache.Store
	if store, err := cache.Open(cfg.Cache.Path); err != nil {
		slog.Warn("response cache disabled", "path", cfg.Cache.Path, "error", err)
	} else {
		cs = store
	}

	var al *audit.Log
	if log, err := audit.Open(cfg.Audit.Path); err != nil {
		slog.Warn("audit log disabled", "path", cfg.Audit.Path, "error", err)
	} else {
		al = log
		slog.Info("audit log open", "run_id", al.RunID())
	}

	cleanup := func() {
		if cs != nil {
			if err := cs.Close(); err != nil {
				slog.Warn("closing cache", "error", err)
			}
		}
		if al != nil {
			if err := al.Close(); err != nil {
				slog.Warn("closing audit log", "error", err)
			}
		}
	}

	// --- The MCP server ---

	s := server.NewMCPServer(
		"opsmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registered := 0

	// --- Entities ---

	if cfg.Entities.Enabled() {
		client, err := platform.NewEntitiesClient(cfg.Entities, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building entities client: %w", err)
		}
		sets := tools.NewEntitySetsTool(client)
		s.AddTool(sets.Definition(), sets.Handle)
		record := tools.NewEntityRecordTool(client)
		s.AddTool(record.Definition(), record.Handle)
		query := tools.NewEntityQueryTool(client)
		s.AddTool(query.Definition(), query.Handle)
		registered += 3
	} else {
		slog.Warn("service not configured, tools skipped", "service", "entities")
	}

	// --- Work items ---

	if cfg.WorkItems.Enabled() {
		client, err := platform.NewWorkItemsClient(cfg.WorkItems, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building workitems client: %w", err)
		}
		query := tools.NewWorkItemQueryTool(client)
		s.AddTool(query.Definition(), query.Handle)
		get := tools.NewWorkItemGetTool(client)
		s.AddTool(get.Definition(), get.Handle)
		registered += 2
	} else {
		slog.Warn("service not configured, tools skipped", "service", "workitems")
	}

	// --- Repositories ---

	if cfg.Repos.Enabled() {
		client, err := platform.NewReposClient(cfg.Repos, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building repos client: %w", err)
		}
		list := tools.NewRepoListTool(client)
		s.AddTool(list.Definition(), list.Handle)
		branches := tools.NewRepoBranchesTool(client)
		s.AddTool(branches.Definition(), branches.Handle)
		file := tools.NewRepoFileTool(client)
		s.AddTool(file.Definition(), file.Handle)
		registered += 3
	} else {
		slog.Warn("service not configured, tools skipped", "service", "repos")
	}

	// --- Telemetry ---

	if cfg.Telemetry.Enabled() {
		client, err := platform.NewTelemetryClient(cfg.Telemetry, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building telemetry client: %w", err)
		}
		query := tools.NewTelemetryQueryTool(client)
		s.AddTool(query.Definition(), query.Handle)
		registered++
	} else {
		slog.Warn("service not configured, tools skipped", "service", "telemetry")
	}

	// --- SQL metadata ---

	if cfg.SQLMeta.Enabled() {
		client, err := platform.NewSQLMetaClient(cfg.SQLMeta, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building sqlmeta client: %w", err)
		}
		tables := tools.NewSQLTablesTool(client)
		s.AddTool(tables.Definition(), tables.Handle)
		describe := tools.NewSQLDescribeTool(client)
		s.AddTool(describe.Definition(), describe.Handle)
		registered += 2
	} else {
		slog.Warn("service not configured, tools skipped", "service", "sqlmeta")
	}

	// --- File libraries ---

	if cfg.Files.Enabled() {
		client, err := platform.NewFilesClient(cfg.Files, cs, al)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("building files client: %w", err)
		}
		list := tools.NewLibraryListTool(client)
		s.AddTool(list.Definition(), list.Handle)
		files := tools.NewLibraryFilesTool(client)
		s.AddTool(files.Definition(), files.Handle)
		info := tools.NewLibraryInfoTool(client)
		s.AddTool(info.Definition(), info.Handle)
		registered += 3
	} else {
		slog.Warn("service not configured, tools skipped", "service", "files")
	}

	slog.Info("tools registered", "count", registered)

	// --- Prompts ---

	triage := prompts.NewTriagePrompt()
	s.AddPrompt(triage.Definition(), triage.Handle)

	summary := prompts.NewSummaryPrompt()
	s.AddPrompt(summary.Definition(), summary.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(al)
	s.AddResource(resourceHandler.AuditResource(), resourceHandler.HandleAudit)

	return s, cleanup, nil
}

// noop is the cleanup returned alongside construction errors.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the wrapped platforms effectively.
func serverInstructions() string {
	return `You have access to opsmcp, a read-only window into the team's
operational platforms: entity records, work items, source repositories,
telemetry, SQL schema metadata, and document libraries.

## How to use it

- Discover before you fetch: ent-sets, repo-list, sql-tables, and
  lib-list enumerate what exists. Call them before guessing names.
- Prefer targeted reads: wit-get, ent-record, repo-file, and lib-info
  fetch one thing cheaply. Use the query tools (wit-query, ent-query,
  tel-query) only when you need a search.
- Results are truncated views shaped for conversation, not full API
  payloads. Say so when the user needs the complete record.
- Every call is written to an audit log; the opsmcp://audit/recent
  resource shows what this session has already fetched.

## What it is not

All tools are read-only. There is no way to create, update, or delete
anything through this server, so never promise the user a write.`
}
