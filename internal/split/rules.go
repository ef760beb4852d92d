package split

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleKind selects how a classification rule matches a unit name.
type RuleKind string

const (
	// RuleNames matches by exact membership in a finite name set.
	RuleNames RuleKind = "names"
	// RulePrefix matches by case-sensitive name prefix.
	RulePrefix RuleKind = "prefix"
)

// Rule maps unit names to a destination module. Rules are evaluated in
// slice order and the first match wins, so explicit name sets must be
// listed before the prefix rules that would otherwise shadow them.
type Rule struct {
	Kind        RuleKind `yaml:"kind"`
	Names       []string `yaml:"names,omitempty"`
	Prefix      string   `yaml:"prefix,omitempty"`
	Destination string   `yaml:"destination"`
}

// Classify returns the destination of the first rule matching name, or
// ("", false) when no rule matches. It is pure: identical arguments
// always yield identical results.
func Classify(name string, rules []Rule) (string, bool) {
	for _, r := range rules {
		switch r.Kind {
		case RuleNames:
			for _, n := range r.Names {
				if n == name {
					return r.Destination, true
				}
			}
		case RulePrefix:
			if strings.HasPrefix(name, r.Prefix) {
				return r.Destination, true
			}
		}
	}
	return "", false
}

// DefaultRules returns the built-in classification table for the six
// platform services. Explicit name sets cover legacy tool names that
// predate the prefix convention.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: RuleNames, Names: []string{"whoami", "entity-record", "entity-query"}, Destination: "entities"},
		{Kind: RuleNames, Names: []string{"run-wiql", "workitem-detail"}, Destination: "workitems"},
		{Kind: RuleNames, Names: []string{"browse-repo", "read-source"}, Destination: "repos"},
		{Kind: RuleNames, Names: []string{"query-traces"}, Destination: "telemetry"},
		{Kind: RuleNames, Names: []string{"describe-schema"}, Destination: "sqlmeta"},
		{Kind: RulePrefix, Prefix: "ent-", Destination: "entities"},
		{Kind: RulePrefix, Prefix: "wit-", Destination: "workitems"},
		{Kind: RulePrefix, Prefix: "repo-", Destination: "repos"},
		{Kind: RulePrefix, Prefix: "tel-", Destination: "telemetry"},
		{Kind: RulePrefix, Prefix: "sql-", Destination: "sqlmeta"},
		{Kind: RulePrefix, Prefix: "lib-", Destination: "files"},
	}
}

// rulesFile is the on-disk shape of an externalized rule table.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a YAML rule table. The file shape is:
//
//	rules:
//	  - kind: names
//	    names: [alpha-foo, alpha-bar]
//	    destination: alpha
//	  - kind: prefix
//	    prefix: ghe-
//	    destination: github-enterprise
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	for i, r := range f.Rules {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("rules file %s, rule %d: %w", path, i+1, err)
		}
	}
	return f.Rules, nil
}

func validateRule(r Rule) error {
	if r.Destination == "" {
		return fmt.Errorf("missing destination")
	}
	switch r.Kind {
	case RuleNames:
		if len(r.Names) == 0 {
			return fmt.Errorf("names rule has an empty name set")
		}
	case RulePrefix:
		if r.Prefix == "" {
			return fmt.Errorf("prefix rule has an empty prefix")
		}
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}
