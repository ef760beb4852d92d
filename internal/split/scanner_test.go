package split

import (
	"strings"
	"testing"
)

// --- scanStatement ---

func TestScanStatement_SimpleCall(t *testing.T) {
	buf := `const x = 1;
  server.tool("wit-query", "Run a query", handler);
const y = 2;`
	off := strings.Index(buf, "server.tool")

	raw, rng, err := scanStatement(buf, off)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	want := `  server.tool("wit-query", "Run a query", handler);`
	if raw != want {
		t.Errorf("raw = %q, want %q", raw, want)
	}
	if buf[rng.Start:rng.End] != raw {
		t.Errorf("range [%d,%d) does not cover raw text", rng.Start, rng.End)
	}
}

func TestScanStatement_IncludesLeadingIndentation(t *testing.T) {
	buf := "\t\tserver.prompt(\"tel-triage\", handler);"
	off := strings.Index(buf, "server.prompt")

	raw, _, err := scanStatement(buf, off)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if !strings.HasPrefix(raw, "\t\t") {
		t.Errorf("raw text lost leading indentation: %q", raw)
	}
}

func TestScanStatement_ParenthesisInsideString(t *testing.T) {
	// The unmatched parenthesis inside the description must not end the
	// call early.
	buf := `server.tool("ent-query", "filter (odata", handler);`

	raw, _, err := scanStatement(buf, 0)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if raw != buf {
		t.Errorf("raw = %q, want whole statement", raw)
	}
}

func TestScanStatement_ClosingParenInsideString(t *testing.T) {
	buf := `server.tool("repo-file", async (args) => { return "a)b"; });`

	raw, _, err := scanStatement(buf, 0)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if raw != buf {
		t.Errorf("raw = %q, want whole statement", raw)
	}
}

func TestScanStatement_EscapedQuote(t *testing.T) {
	buf := `server.tool("sql-describe", "He said \"hi\" (once", handler);`

	raw, _, err := scanStatement(buf, 0)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if !strings.Contains(raw, `\"hi\"`) {
		t.Errorf("raw text lost the escaped quote: %q", raw)
	}
	if !strings.HasSuffix(raw, ");") {
		t.Errorf("raw text does not end at the true terminator: %q", raw)
	}
}

func TestScanStatement_SingleQuotesAndBackticks(t *testing.T) {
	buf := "server.tool('lib-list', `multi\nline (desc`, handler);"

	raw, _, err := scanStatement(buf, 0)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if raw != buf {
		t.Errorf("raw = %q, want whole statement", raw)
	}
}

func TestScanStatement_TerminatorAfterWhitespace(t *testing.T) {
	buf := "server.tool(\"wit-get\", handler)\n;"

	raw, _, err := scanStatement(buf, 0)
	if err != nil {
		t.Fatalf("scanStatement returned error: %v", err)
	}
	if !strings.HasSuffix(raw, ";") {
		t.Errorf("terminator not included: %q", raw)
	}
}

// --- failure cases ---

func TestScanStatement_UnterminatedString(t *testing.T) {
	buf := `server.tool("wit-query", "never closed`

	_, _, err := scanStatement(buf, 0)
	if err == nil {
		t.Fatal("expected a scan error")
	}
	if err.Reason != ReasonUnterminatedString {
		t.Errorf("reason = %s, want %s", err.Reason, ReasonUnterminatedString)
	}
	if err.Offset != 0 {
		t.Errorf("offset = %d, want 0", err.Offset)
	}
}

func TestScanStatement_UnbalancedParens(t *testing.T) {
	buf := `server.tool("wit-query", (args) => helper(args`

	_, _, err := scanStatement(buf, 0)
	if err == nil {
		t.Fatal("expected a scan error")
	}
	if err.Reason != ReasonUnbalanced {
		t.Errorf("reason = %s, want %s", err.Reason, ReasonUnbalanced)
	}
}

func TestScanStatement_MissingTerminator(t *testing.T) {
	buf := `server.tool("wit-query", handler)`

	_, _, err := scanStatement(buf, 0)
	if err == nil {
		t.Fatal("expected a scan error")
	}
	if err.Reason != ReasonNoTerminator {
		t.Errorf("reason = %s, want %s", err.Reason, ReasonNoTerminator)
	}
}

func TestScanStatement_NoOpeningParen(t *testing.T) {
	buf := `server.tool`

	_, _, err := scanStatement(buf, 0)
	if err == nil {
		t.Fatal("expected a scan error")
	}
	if err.Reason != ReasonUnbalanced {
		t.Errorf("reason = %s, want %s", err.Reason, ReasonUnbalanced)
	}
}

func TestScanError_ExcerptIsBounded(t *testing.T) {
	buf := "server.tool(" + strings.Repeat("x", 500)

	_, _, err := scanStatement(buf, 0)
	if err == nil {
		t.Fatal("expected a scan error")
	}
	if len(err.Excerpt) > excerptLen {
		t.Errorf("excerpt length = %d, want <= %d", len(err.Excerpt), excerptLen)
	}
}

// --- extractName ---

func TestExtractName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`server.tool("wit-query", handler);`, "wit-query", true},
		{`server.tool('ent-record', handler);`, "ent-record", true},
		{"server.prompt(`tel-triage`, handler);", "tel-triage", true},
		{`server.tool("with \"quote\"", handler);`, `with "quote"`, true},
		{`server.tool(handler);`, "", false},
		{`server.tool("unclosed`, "", false},
	}
	for _, tt := range tests {
		got, ok := extractName(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("extractName(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
