package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	opsserver "opsmcp/internal/server"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the MCP server using the stdio transport. The host (Claude
Code, Cursor, VS Code, ...) owns stdin/stdout; all diagnostics go to
stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	s, cleanup, err := opsserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt. The stdio server also stops on
	// its own when the host closes stdin.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down")
		cleanup()
		os.Exit(0)
	}()

	slog.Info("serving on stdio", "version", opsserver.Version)
	return server.ServeStdio(s)
}
