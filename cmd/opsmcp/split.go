package main

import (
	"fmt"
	"os"

	"opsmcp/internal/split"

	"github.com/spf13/cobra"
)

var (
	splitSource string
	splitOutDir string
	splitRules  string
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the legacy registration monolith into per-service modules",
	Long: `Split reads a TypeScript source file containing server.tool and
server.prompt registrations, classifies each registered name against
the rule table, and writes one register-<service>.ts module per
destination plus a report.json summary.

Names that match no rule are listed on stderr and in the report; they
are never silently dropped. The command fails only when the source
cannot be read, nothing at all could be scanned, or the output
directory is unwritable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit()
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitSource, "source", "", "TypeScript source file to split (required)")
	splitCmd.Flags().StringVar(&splitOutDir, "out-dir", "", "directory for generated modules (required)")
	splitCmd.Flags().StringVar(&splitRules, "rules", "", "YAML rule table (default: built-in rules)")
	_ = splitCmd.MarkFlagRequired("source")
	_ = splitCmd.MarkFlagRequired("out-dir")
}

func runSplit() error {
	buf, err := os.ReadFile(splitSource)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	rules := split.DefaultRules()
	if splitRules != "" {
		rules, err = split.LoadRules(splitRules)
		if err != nil {
			return fmt.Errorf("loading rules: %w", err)
		}
	}

	result, err := split.Run(string(buf), rules)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", splitSource, err)
	}

	written, err := split.WriteOutputs(splitOutDir, result.Buckets, split.DefaultManifests())
	if err != nil {
		return err
	}

	report := result.Report()
	reportPath, err := split.WriteReport(splitOutDir, report)
	if err != nil {
		return err
	}

	printSummary(report, written, reportPath)
	return nil
}

// printSummary writes the human-readable run summary to stderr.
func printSummary(report split.Report, written *split.WriteResult, reportPath string) {
	fmt.Fprintf(os.Stderr, "split: %d units from %s\n", report.TotalUnits, splitSource)
	for _, d := range report.Destinations {
		fmt.Fprintf(os.Stderr, "  %-12s %d prompts, %d tools -> %s\n",
			d.Destination, d.Prompts, d.Operations, split.ModuleFileName(d.Destination))
	}
	if len(report.Unmapped) > 0 {
		fmt.Fprintf(os.Stderr, "unmapped names (%d):\n", len(report.Unmapped))
		for _, u := range report.Unmapped {
			fmt.Fprintf(os.Stderr, "  %s at offset %d\n", u.Name, u.Offset)
		}
	}
	if len(report.Failures) > 0 {
		fmt.Fprintf(os.Stderr, "scan failures (%d):\n", len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stderr, "  %v\n", f)
		}
	}
	for _, gerr := range written.GenerationErrors {
		fmt.Fprintf(os.Stderr, "generation error: %v\n", gerr)
	}
	fmt.Fprintf(os.Stderr, "report: %s\n", reportPath)
}
