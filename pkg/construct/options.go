package construct

// Options configures a chunked build, mirroring the CLI `build` options
// documents as contract: k, canonical mode, reverse-complement
// inclusion, split count, worker count, memory cap.
type Options struct {
	K                 int
	Canonical         bool
	ReverseComplement bool
	NumSplits         int
	Parallel          int
	MemCapBytes       uint64
	// PartIdx/PartsTotal select a disjoint subset of suffixes, for
	// independent processes building partial chunks that are later
	// combined by a graph merge in pkg/mergegraph ("independent processes may
	// build disjoint partial chunks").
	PartIdx    int
	PartsTotal int
}

// DefaultOptions returns reasonable defaults for a single-process build.
func DefaultOptions(k int) Options {
	return Options{
		K:          k,
		Canonical:  true,
		NumSplits:  1,
		Parallel:   1,
		PartsTotal: 1,
	}
}

// ownsSuffix reports whether suffix index i (of nsplits total, 0-based) is
// handled by this (PartIdx, PartsTotal) process.
func (o Options) ownsSuffix(i int) bool {
	if o.PartsTotal <= 1 {
		return true
	}
	return i%o.PartsTotal == o.PartIdx
}
