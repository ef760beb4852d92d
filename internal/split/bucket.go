package split

// Bucket accumulates the units classified to one destination, prompts and
// operations separately, each in source encounter order.
type Bucket struct {
	Destination string
	Prompts     []Unit
	Operations  []Unit
}

// Len returns the total number of units in the bucket.
func (b *Bucket) Len() int {
	return len(b.Prompts) + len(b.Operations)
}

// Buckets is an insertion-ordered collection of destination buckets.
// Buckets are created lazily on the first unit classified to a
// destination and are never merged or reordered, so generation order is
// the destination first-encounter order in the source.
type Buckets struct {
	order  []string
	byDest map[string]*Bucket
}

// NewBuckets creates an empty bucket collection.
func NewBuckets() *Buckets {
	return &Buckets{byDest: make(map[string]*Bucket)}
}

// Add appends unit to the destination's prompt or operation sequence
// according to its kind, creating the bucket if absent.
func (bs *Buckets) Add(destination string, unit Unit) {
	b, ok := bs.byDest[destination]
	if !ok {
		b = &Bucket{Destination: destination}
		bs.byDest[destination] = b
		bs.order = append(bs.order, destination)
	}
	if unit.Kind == KindPrompt {
		b.Prompts = append(b.Prompts, unit)
	} else {
		b.Operations = append(b.Operations, unit)
	}
}

// Get returns the bucket for destination, or nil if no unit was
// classified to it.
func (bs *Buckets) Get(destination string) *Bucket {
	return bs.byDest[destination]
}

// All returns the buckets in destination first-encounter order.
func (bs *Buckets) All() []*Bucket {
	out := make([]*Bucket, 0, len(bs.order))
	for _, dest := range bs.order {
		out = append(out, bs.byDest[dest])
	}
	return out
}

// Len returns the number of destinations with at least one unit.
func (bs *Buckets) Len() int {
	return len(bs.order)
}
