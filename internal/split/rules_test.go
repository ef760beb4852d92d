package split

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Classify ---

func TestClassify_ExplicitNameSet(t *testing.T) {
	rules := []Rule{
		{Kind: RuleNames, Names: []string{"alpha-foo", "alpha-bar"}, Destination: "alpha"},
	}

	got, ok := Classify("alpha-foo", rules)
	if !ok || got != "alpha" {
		t.Errorf("Classify = (%q, %v), want (alpha, true)", got, ok)
	}
}

func TestClassify_PrefixMatch(t *testing.T) {
	rules := []Rule{
		{Kind: RulePrefix, Prefix: "ghe-", Destination: "github-enterprise"},
	}

	got, ok := Classify("ghe-bar", rules)
	if !ok || got != "github-enterprise" {
		t.Errorf("Classify = (%q, %v), want (github-enterprise, true)", got, ok)
	}
}

func TestClassify_PrefixIsCaseSensitive(t *testing.T) {
	rules := []Rule{
		{Kind: RulePrefix, Prefix: "wit-", Destination: "workitems"},
	}

	if _, ok := Classify("WIT-query", rules); ok {
		t.Error("prefix match must be case-sensitive")
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Kind: RuleNames, Names: []string{"wit-special"}, Destination: "entities"},
		{Kind: RulePrefix, Prefix: "wit-", Destination: "workitems"},
	}

	got, _ := Classify("wit-special", rules)
	if got != "entities" {
		t.Errorf("Classify = %q, want explicit rule to win", got)
	}

	// Reordering changes the result only because both rules match.
	reordered := []Rule{rules[1], rules[0]}
	got, _ = Classify("wit-special", reordered)
	if got != "workitems" {
		t.Errorf("Classify after reorder = %q, want workitems", got)
	}
}

func TestClassify_NoMatch(t *testing.T) {
	got, ok := Classify("orphan", DefaultRules())
	if ok {
		t.Errorf("Classify = (%q, true), want no match", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	rules := DefaultRules()
	first, ok1 := Classify("wit-query", rules)
	second, ok2 := Classify("wit-query", rules)
	if first != second || ok1 != ok2 {
		t.Errorf("Classify not deterministic: (%q,%v) then (%q,%v)", first, ok1, second, ok2)
	}
}

func TestDefaultRules_CoverServicePrefixes(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ent-sets", "entities"},
		{"wit-query", "workitems"},
		{"repo-file", "repos"},
		{"tel-query", "telemetry"},
		{"sql-tables", "sqlmeta"},
		{"lib-list", "files"},
		{"whoami", "entities"},
		{"run-wiql", "workitems"},
	}
	rules := DefaultRules()
	for _, tt := range tests {
		got, ok := Classify(tt.name, rules)
		if !ok || got != tt.want {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, true)", tt.name, got, ok, tt.want)
		}
	}
}

// --- LoadRules ---

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `
rules:
  - kind: names
    names: [alpha-foo]
    destination: alpha
  - kind: prefix
    prefix: ghe-
    destination: github-enterprise
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules returned error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}
	if rules[0].Kind != RuleNames || rules[0].Destination != "alpha" {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	if rules[1].Prefix != "ghe-" {
		t.Errorf("rule 1 prefix = %q, want ghe-", rules[1].Prefix)
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRules_EmptyTable(t *testing.T) {
	path := writeRules(t, "rules: []\n")
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for empty rule table")
	}
}

func TestLoadRules_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown kind", "rules:\n  - kind: regex\n    destination: x\n"},
		{"missing destination", "rules:\n  - kind: prefix\n    prefix: a-\n"},
		{"empty name set", "rules:\n  - kind: names\n    destination: x\n"},
		{"empty prefix", "rules:\n  - kind: prefix\n    destination: x\n"},
	}
	for _, tt := range tests {
		path := writeRules(t, tt.yaml)
		if _, err := LoadRules(path); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}
	return path
}
