package split

import (
	"fmt"
	"strings"
)

// keyword marks one registration statement family in the legacy source.
type keyword struct {
	text string
	kind UnitKind
}

// A keyword match must be followed by the call's opening parenthesis
// (whitespace allowed) to count as a registration; "server.toolbox" or a
// bare mention without a call shape is skipped.
var keywords = []keyword{
	{"server.tool", KindOperation},
	{"server.prompt", KindPrompt},
}

// Result holds everything one engine run produced. The caller owns it;
// the engine keeps no state between runs, so independent buffers may be
// processed in parallel by independent Run calls.
type Result struct {
	Buckets  *Buckets
	Unmapped []UnmappedName
	Failures []*ScanError
}

// Report builds the run report for the result.
func (r *Result) Report() Report {
	return BuildReport(r.Buckets, r.Unmapped, r.Failures)
}

// Run scans buf for registration statements, classifies each extracted
// unit against rules, and collects the units into destination buckets.
//
// Scan failures are recovered per occurrence: the failure is recorded,
// the scan skips past the keyword, and extraction continues. Run returns
// an error only when a keyword occurs in the buffer and every one of its
// occurrences fails to scan, which means the source is too malformed to
// process.
func Run(buf string, rules []Rule) (*Result, error) {
	res := &Result{Buckets: NewBuckets()}
	occurrences := make(map[UnitKind]int)
	successes := make(map[UnitKind]int)

	pos := 0
	for {
		kwOffset, kw := nextKeyword(buf, pos)
		if kwOffset < 0 {
			break
		}
		occurrences[kw.kind]++

		raw, rng, scanErr := scanStatement(buf, kwOffset)
		if scanErr == nil {
			name, ok := extractName(raw)
			if !ok {
				scanErr = newScanError(buf, kwOffset, ReasonNoName)
			} else {
				unit := Unit{Name: name, Kind: kw.kind, RawText: raw, Range: rng}
				successes[kw.kind]++
				if dest, matched := Classify(name, rules); matched {
					res.Buckets.Add(dest, unit)
				} else {
					res.Unmapped = append(res.Unmapped, UnmappedName{Name: name, Offset: rng.Start})
				}
				pos = rng.End
				continue
			}
		}

		res.Failures = append(res.Failures, scanErr)
		pos = kwOffset + len(kw.text)
	}

	for _, kw := range keywords {
		if occurrences[kw.kind] > 0 && successes[kw.kind] == 0 {
			return res, fmt.Errorf("every %s occurrence failed to scan: source is too malformed to process", kw.text)
		}
	}
	return res, nil
}

// nextKeyword finds the earliest registration keyword at or after pos
// whose next non-space character is an opening parenthesis. It returns
// -1 when no further registration occurs.
func nextKeyword(buf string, pos int) (int, keyword) {
	for pos < len(buf) {
		best := -1
		var bestKw keyword
		for _, kw := range keywords {
			idx := strings.Index(buf[pos:], kw.text)
			if idx < 0 {
				continue
			}
			if best < 0 || pos+idx < best {
				best = pos + idx
				bestKw = kw
			}
		}
		if best < 0 {
			break
		}
		if calledAt(buf, best+len(bestKw.text)) {
			return best, bestKw
		}
		pos = best + len(bestKw.text)
	}
	return -1, keyword{}
}

// calledAt reports whether the first non-space character at or after
// offset is an opening parenthesis.
func calledAt(buf string, offset int) bool {
	for i := offset; i < len(buf); i++ {
		switch buf[i] {
		case ' ', '\t':
			continue
		case '(':
			return true
		default:
			return false
		}
	}
	return false
}
