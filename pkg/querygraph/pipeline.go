package querygraph

import (
	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/annotate"
	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/ingest"
)

// Options configures one batched-query pass.
type Options struct {
	K                 int
	BatchSizeBytes    int
	DiscoveryFraction float64
}

// Accumulator buffers query sequences up to opts.BatchSizeBytes before a
// batch is flushed through BuildQueryGraph (step 1).
type Accumulator struct {
	opts  Options
	bytes int
	batch []ingest.Sequence
}

// NewAccumulator creates an empty accumulator governed by opts.
func NewAccumulator(opts Options) *Accumulator {
	return &Accumulator{opts: opts}
}

// Add appends seq to the pending batch, reporting whether the batch has
// now reached its configured byte budget and should be flushed.
func (a *Accumulator) Add(seq ingest.Sequence) bool {
	a.batch = append(a.batch, seq)
	a.bytes += len(seq.Data)
	return a.bytes >= a.opts.BatchSizeBytes
}

// Flush returns and clears the pending batch.
func (a *Accumulator) Flush() []ingest.Sequence {
	out := a.batch
	a.batch = nil
	a.bytes = 0
	return out
}

// SequenceResult is the per-input-sequence outcome of a batched query,
// kept at the sequence's ordinal position in the batch so that output
// order matches input order regardless of internal processing order.
type SequenceResult struct {
	Label   string
	HitRate float64
	// Labels holds, per k-mer position in Label's sequence, the set of
	// label names attached to that k-mer, or nil where the k-mer was
	// unmapped or discovery-fraction masked.
	Labels [][]string
}

// BuildQueryGraph executes the batched annotation pipeline over one
// accumulated batch: build a small hash DBG, extract contigs, map
// them once against the large graph, apply discovery-fraction masking,
// then slice the annotation through a UniqueRowAnnotator so per-sequence
// lookups run against the small deduplicated row space instead of
// repeating a full BRWT descent per k-mer.
func BuildQueryGraph(
	big *boss.Graph,
	ann *annotate.BRWT,
	encoder *annotate.LabelEncoder,
	batch []ingest.Sequence,
	opts Options,
) ([]SequenceResult, *annotate.UniqueRowAnnotator, error) {
	if len(batch) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	hg := newHashGraph(opts.K)
	for _, seq := range batch {
		hg.AddSequence(seq.Data)
	}
	contigs := hg.Contigs()

	// indexInFull[p] is the large-graph edge index for node p's outgoing
	// transition as walked within its contig, or boss.Npos if that
	// transition is absent from the large graph (invariant
	// (a): "every small-graph node either has a valid full-graph edge
	// index or is explicitly masked out").
	indexInFull := make(map[alphabet.Packed]uint64, len(hg.nodes))
	for _, c := range contigs {
		mapContig(big, c, opts.K, indexInFull)
	}

	owners := ownersBySequence(batch, opts.K)
	hitRates := make([]float64, len(batch))
	for i, seq := range batch {
		hitRates[i] = hitRate(seq.Data, opts.K, indexInFull)
	}

	masked := make(map[alphabet.Packed]bool)
	if opts.DiscoveryFraction > 0 {
		for p, seqIdxs := range owners {
			sufficient := false
			for _, si := range seqIdxs {
				if hitRates[si] >= opts.DiscoveryFraction {
					sufficient = true
					break
				}
			}
			if !sufficient {
				masked[p] = true
			}
		}
	}

	unique := annotate.NewUniqueRowAnnotator(ann.NumCols())
	rowFor := make(map[alphabet.Packed]uint32, len(hg.nodes))
	for p, idx := range indexInFull {
		if masked[p] {
			continue
		}
		var cols []int
		if idx != boss.Npos {
			cols = ann.GetRow(int(idx) - 1)
		}
		code, err := unique.AddRow(cols)
		if err != nil {
			return nil, nil, ErrBatchTooLarge
		}
		rowFor[p] = code
	}

	results := make([]SequenceResult, len(batch))
	for i, seq := range batch {
		results[i] = SequenceResult{Label: seq.Label, HitRate: hitRates[i]}
		for j := 0; j+opts.K <= len(seq.Data); j++ {
			window := seq.Data[j : j+opts.K]
			if !alphabet.IsValidDNA(window) {
				results[i].Labels = append(results[i].Labels, nil)
				continue
			}
			kmer := alphabet.Pack(window)
			if masked[kmer] {
				results[i].Labels = append(results[i].Labels, nil)
				continue
			}
			code, ok := rowFor[kmer]
			if !ok {
				results[i].Labels = append(results[i].Labels, nil)
				continue
			}
			cols := unique.Columns(code)
			names := make([]string, len(cols))
			for c, col := range cols {
				names[c] = encoder.Decode(col)
			}
			results[i].Labels = append(results[i].Labels, names)
		}
	}

	return results, unique, nil
}

// mapContig fills indexInFull for every node contig c visits that is not
// already mapped, using the large graph's existing KmerToEdge/Fwd
// navigation (step 3: "map each contig once against the large
// graph").
func mapContig(big *boss.Graph, c contig, k int, indexInFull map[alphabet.Packed]uint64) {
	for i, node := range c.kmers {
		if _, ok := indexInFull[node]; ok {
			continue
		}
		if i+k+1 <= len(c.seq) {
			indexInFull[node] = big.KmerToEdge(c.seq[i : i+k+1])
			continue
		}
		// Final node of the contig has no outgoing window within it;
		// reuse the transition that reached it.
		if i == 0 {
			indexInFull[node] = boss.Npos
			continue
		}
		prev := indexInFull[c.kmers[i-1]]
		if prev == boss.Npos {
			indexInFull[node] = boss.Npos
			continue
		}
		indexInFull[node] = big.Fwd(prev)
	}
}

// ownersBySequence maps each k-mer to the indices (into batch) of every
// sequence containing it, used to decide discovery-fraction masking per
// node rather than per sequence.
func ownersBySequence(batch []ingest.Sequence, k int) map[alphabet.Packed][]int {
	owners := make(map[alphabet.Packed][]int)
	for i, seq := range batch {
		seen := make(map[alphabet.Packed]bool)
		for j := 0; j+k <= len(seq.Data); j++ {
			window := seq.Data[j : j+k]
			if !alphabet.IsValidDNA(window) {
				continue
			}
			p := alphabet.Pack(window)
			if seen[p] {
				continue
			}
			seen[p] = true
			owners[p] = append(owners[p], i)
		}
	}
	return owners
}

// hitRate is the fraction of seq's k-mers whose node mapped to a present
// (non-Npos) large-graph edge, used by the discovery-fraction gate.
func hitRate(seq string, k int, indexInFull map[alphabet.Packed]uint64) float64 {
	total, hits := 0, 0
	for j := 0; j+k <= len(seq); j++ {
		window := seq[j : j+k]
		if !alphabet.IsValidDNA(window) {
			continue
		}
		total++
		if idx, ok := indexInFull[alphabet.Pack(window)]; ok && idx != boss.Npos {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
