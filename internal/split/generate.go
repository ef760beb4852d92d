package split

import (
	"fmt"
	"strings"
)

// GenerationError marks a destination whose module could not be emitted.
// It is fatal for that destination only; other destinations still
// generate.
type GenerationError struct {
	Destination string
	Msg         string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating module for %q: %s", e.Destination, e.Msg)
}

// ModuleFileName returns the deterministic output file name for a
// destination.
func ModuleFileName(destination string) string {
	return "register-" + destination + ".ts"
}

// Generate assembles the complete output module for one destination.
//
// Output order is fixed: header, imports, the exported registration
// function with lazy collaborator initialization, prompt units, operation
// units, and the trailing count log. Units are emitted verbatim in source
// encounter order. The output is byte-identical across runs for the same
// bucket and manifest: nothing time- or map-order-dependent is written.
//
// An empty bucket yields ("", nil): the destination produces no file. A
// non-empty bucket with a zero manifest is a GenerationError.
func Generate(bucket *Bucket, manifest Manifest) (string, error) {
	if bucket == nil || bucket.Len() == 0 {
		return "", nil
	}
	if manifest.Collaborator == "" || manifest.Constructor == "" || manifest.ConfigKey == "" {
		return "", &GenerationError{
			Destination: bucket.Destination,
			Msg:         "manifest is missing collaborator facts",
		}
	}

	dest := bucket.Destination
	exported := exportName(dest)
	local := localName(dest) + "Client"

	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", ModuleFileName(dest))
	b.WriteString("// Generated by opsmcp split. Do not edit by hand; rerun the split instead.\n")
	fmt.Fprintf(&b, "// Destination: %s (collaborator: %s)\n", dest, manifest.Collaborator)
	b.WriteString("\n")
	b.WriteString("import { McpServer } from \"@modelcontextprotocol/sdk/server/mcp.js\";\n")
	fmt.Fprintf(&b, "import { %s, %s } from \"./clients.js\";\n", manifest.Collaborator, manifest.Constructor)
	b.WriteString("import { loadConfig } from \"./config.js\";\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "export function register%sTools(server: McpServer, client?: %s): void {\n",
		exported, manifest.Collaborator)

	// The collaborator is built on first use, never at module load: the
	// constructor performs authenticated setup that must not run when the
	// module is merely imported.
	fmt.Fprintf(&b, "  let %s = client;\n", local)
	fmt.Fprintf(&b, "  const getClient = (): %s => {\n", manifest.Collaborator)
	fmt.Fprintf(&b, "    if (!%s) {\n", local)
	fmt.Fprintf(&b, "      %s = %s(loadConfig().%s);\n", local, manifest.Constructor, manifest.ConfigKey)
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    return %s;\n", local)
	b.WriteString("  };\n")

	for _, u := range bucket.Prompts {
		b.WriteString("\n")
		b.WriteString(u.RawText)
		b.WriteString("\n")
	}
	for _, u := range bucket.Operations {
		b.WriteString("\n")
		b.WriteString(u.RawText)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  console.error(\"[%s] registered %d prompts, %d tools\");\n",
		ModuleFileName(dest), len(bucket.Prompts), len(bucket.Operations))
	b.WriteString("}\n")
	return b.String(), nil
}

// exportName turns a destination identifier into the PascalCase segment
// of the exported registration function ("github-enterprise" becomes
// "GithubEnterprise").
func exportName(destination string) string {
	parts := strings.Split(destination, "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// localName turns a destination identifier into a camelCase local
// variable stem ("github-enterprise" becomes "githubEnterprise").
func localName(destination string) string {
	n := exportName(destination)
	if n == "" {
		return n
	}
	return strings.ToLower(n[:1]) + n[1:]
}
