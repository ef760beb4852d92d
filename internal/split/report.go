package split

// DestinationCount is the per-destination slice of a run report.
type DestinationCount struct {
	Destination string `json:"destination"`
	Prompts     int    `json:"prompts"`
	Operations  int    `json:"operations"`
}

// UnmappedName records a unit whose name matched no classification rule.
// Identity is name plus offset: the same literal name at two offsets is
// two entries, so an ambiguous rule table surfaces instead of collapsing.
type UnmappedName struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
}

// Report is the immutable summary of one engine run. It only aggregates
// what the driver already computed; it never reclassifies.
type Report struct {
	TotalUnits   int                `json:"total_units"`
	Destinations []DestinationCount `json:"destinations"`
	Unmapped     []UnmappedName     `json:"unmapped,omitempty"`
	Failures     []*ScanError       `json:"scan_failures,omitempty"`
}

// BuildReport assembles the run report from the driver's results.
// Destinations appear in bucket first-encounter order; unmapped names are
// deduplicated by name+offset, keeping first-encounter order.
func BuildReport(buckets *Buckets, unmapped []UnmappedName, failures []*ScanError) Report {
	r := Report{Failures: failures}

	for _, b := range buckets.All() {
		r.Destinations = append(r.Destinations, DestinationCount{
			Destination: b.Destination,
			Prompts:     len(b.Prompts),
			Operations:  len(b.Operations),
		})
		r.TotalUnits += b.Len()
	}

	seen := make(map[UnmappedName]bool, len(unmapped))
	for _, u := range unmapped {
		if seen[u] {
			continue
		}
		seen[u] = true
		r.Unmapped = append(r.Unmapped, u)
	}
	r.TotalUnits += len(r.Unmapped)

	return r
}
