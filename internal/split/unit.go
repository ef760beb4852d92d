// Package split implements the legacy-source repackaging engine behind
// "opsmcp split".
//
// The legacy server registered every tool and prompt in one file. This
// package scans that file for registration statements, classifies each
// one to a destination service module by name, and regenerates one
// compilable module per destination. Extraction is purely textual: the
// scanner tracks parenthesis depth and string/escape state, never a full
// syntax tree.
package split

// UnitKind distinguishes the two registration statement families.
type UnitKind string

const (
	// KindOperation is a tool registration (server.tool).
	KindOperation UnitKind = "operation"
	// KindPrompt is a prompt-template registration (server.prompt).
	KindPrompt UnitKind = "prompt"
)

// SourceRange is a half-open [Start, End) byte range into the scanned buffer.
type SourceRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Unit is one registration statement lifted out of the legacy source.
//
// RawText is the exact substring of the original buffer, from the start
// of the line containing the registration keyword through the terminating
// semicolon. It is syntactically self-contained: concatenating units into
// a generated module never introduces dangling delimiters.
type Unit struct {
	Name    string      `json:"name"`
	Kind    UnitKind    `json:"kind"`
	RawText string      `json:"-"`
	Range   SourceRange `json:"range"`
}
