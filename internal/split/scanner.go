package split

import (
	"fmt"
	"strings"
)

// ScanReason classifies why a statement could not be extracted.
type ScanReason string

const (
	// ReasonUnterminatedString means the buffer ended inside a string literal.
	ReasonUnterminatedString ScanReason = "unterminated-string"
	// ReasonUnbalanced means the buffer ended before the call's parentheses closed.
	ReasonUnbalanced ScanReason = "unbalanced-parenthesis"
	// ReasonNoTerminator means the call closed but no semicolon followed it.
	ReasonNoTerminator ScanReason = "missing-terminator"
	// ReasonNoName means the call carried no string literal to name the unit.
	ReasonNoName ScanReason = "missing-name"
)

// ScanError reports one failed extraction attempt. The driver records it
// and keeps scanning; it is a value, not control flow.
type ScanError struct {
	Offset  int        `json:"offset"`
	Reason  ScanReason `json:"reason"`
	Excerpt string     `json:"excerpt"`
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan failed at offset %d (%s): %q", e.Offset, e.Reason, e.Excerpt)
}

// excerptLen bounds the diagnostic snippet carried by a ScanError.
const excerptLen = 40

func newScanError(buf string, offset int, reason ScanReason) *ScanError {
	end := offset + excerptLen
	if end > len(buf) {
		end = len(buf)
	}
	excerpt := strings.ReplaceAll(buf[offset:end], "\n", " ")
	return &ScanError{Offset: offset, Reason: reason, Excerpt: excerpt}
}

// scanStatement extracts the complete registration statement whose keyword
// occurrence starts at keywordOffset. The offset must sit at or before the
// call's opening parenthesis.
//
// The returned text spans from the start of the line containing the
// keyword through the terminating semicolon, so a unit keeps its original
// indentation when pasted into a generated module.
//
// String literals are quote-aware ('', "", and backticks) with backslash
// escapes. Template literal substitutions (${...}) are not tracked: a
// quote or backtick inside a substitution desynchronizes the scan. The
// legacy source never nests those, so the case is left unsupported.
func scanStatement(buf string, keywordOffset int) (string, SourceRange, *ScanError) {
	lineStart := strings.LastIndexByte(buf[:keywordOffset], '\n') + 1

	// Advance to the call's opening parenthesis.
	open := strings.IndexByte(buf[keywordOffset:], '(')
	if open < 0 {
		return "", SourceRange{}, newScanError(buf, keywordOffset, ReasonUnbalanced)
	}
	open += keywordOffset

	depth := 0
	inString := false
	escaped := false
	var quote byte

	i := open
	for ; i < len(buf); i++ {
		ch := buf[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case quote:
				inString = false
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			inString = true
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && ch == ')' {
			break
		}
	}
	if i >= len(buf) {
		reason := ReasonUnbalanced
		if inString {
			reason = ReasonUnterminatedString
		}
		return "", SourceRange{}, newScanError(buf, keywordOffset, reason)
	}

	// The call is closed; the statement ends at the next semicolon.
	// String-awareness is unnecessary past the closing parenthesis.
	term := strings.IndexByte(buf[i:], ';')
	if term < 0 {
		return "", SourceRange{}, newScanError(buf, keywordOffset, ReasonNoTerminator)
	}
	end := i + term + 1

	rng := SourceRange{Start: lineStart, End: end}
	return buf[lineStart:end], rng, nil
}

// extractName returns the first string literal argument of the statement,
// which is the registered operation or prompt name.
func extractName(raw string) (string, bool) {
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return "", false
	}
	rest := raw[open+1:]
	start := strings.IndexAny(rest, "\"'`")
	if start < 0 {
		return "", false
	}
	quote := rest[start]

	var name strings.Builder
	escaped := false
	for i := start + 1; i < len(rest); i++ {
		ch := rest[i]
		if escaped {
			name.WriteByte(ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case quote:
			return name.String(), true
		default:
			name.WriteByte(ch)
		}
	}
	return "", false
}
