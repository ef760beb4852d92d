// opsmcp is an MCP server that gives AI coding tools a read-only view
// of the team's operational platforms, plus a maintenance command that
// splits the legacy registration monolith into per-service modules.
//
// Usage:
//
//	opsmcp serve                  # Start MCP server (stdio transport)
//	opsmcp split --source f.ts --out-dir out/
//	opsmcp version
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"opsmcp/internal/config"
	"opsmcp/internal/server"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opsmcp",
	Short: "MCP server for the team's operational platforms",
	Long: `opsmcp exposes the team's operational platforms to AI coding tools
over the Model Context Protocol: entity records, work items, source
repositories, telemetry, SQL schema metadata, and document libraries.

All tools are read-only. Responses are cached and every platform call
is written to a local audit log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg.Log.Level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("opsmcp v%s\n", server.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./opsmcp.yaml or ~/.opsmcp/opsmcp.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs a text slog handler on stderr. Stdout belongs
// to the MCP stdio transport and must stay clean.
func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
