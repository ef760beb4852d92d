package split

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReportFileName is the machine-readable run summary written next to the
// generated modules.
const ReportFileName = "report.json"

// WriteResult lists what WriteOutputs produced. GenerationErrors are
// per-destination failures; the remaining destinations still generated.
type WriteResult struct {
	Files            []string
	GenerationErrors []error
}

// WriteOutputs generates one module per non-empty bucket and writes it
// under outDir. A destination without a manifest entry records a
// GenerationError and is skipped; an unwritable output directory or file
// aborts the whole run with an error.
func WriteOutputs(outDir string, buckets *Buckets, manifests map[string]Manifest) (*WriteResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	res := &WriteResult{}
	for _, b := range buckets.All() {
		text, err := Generate(b, manifests[b.Destination])
		if err != nil {
			res.GenerationErrors = append(res.GenerationErrors, err)
			continue
		}
		if text == "" {
			continue
		}
		path := filepath.Join(outDir, ModuleFileName(b.Destination))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return res, fmt.Errorf("writing module %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// WriteReport writes the run report as indented JSON under outDir.
func WriteReport(outDir string, report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(outDir, ReportFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
