package querygraph

import (
	"sort"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
)

// hashNode is one k-mer node of the small query-local de Bruijn graph: a
// plain hash map keyed by packed k-mer rather than BOSS's succinct arrays,
// since the batch's k-mer set is small enough that O(1) map access beats
// the cost of building rank/select structures per batch.
type hashNode struct {
	outMask uint8 // bit c set iff an edge to the k-mer extended by symbol c exists
	inMask  uint8
}

func (n *hashNode) outdegree() int { return popcount8(n.outMask) }
func (n *hashNode) indegree() int  { return popcount8(n.inMask) }

func popcount8(b uint8) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// hashGraph is the small per-batch DBG of step 2.
type hashGraph struct {
	k     int
	nodes map[alphabet.Packed]*hashNode
}

func newHashGraph(k int) *hashGraph {
	return &hashGraph{k: k, nodes: make(map[alphabet.Packed]*hashNode)}
}

func (hg *hashGraph) nodeFor(p alphabet.Packed) *hashNode {
	n, ok := hg.nodes[p]
	if !ok {
		n = &hashNode{}
		hg.nodes[p] = n
	}
	return n
}

// AddSequence inserts every (k+1)-mer window of s as an edge between its
// length-k prefix and suffix nodes.
func (hg *hashGraph) AddSequence(s string) {
	if len(s) <= hg.k {
		return
	}
	for i := 0; i+hg.k+1 <= len(s); i++ {
		window := s[i : i+hg.k+1]
		if !alphabet.IsValidDNA(window) {
			continue
		}
		src := alphabet.Pack(window[:hg.k])
		sym, _ := alphabet.Encode(window[hg.k])
		dst := alphabet.AppendSymbol(src, hg.k, sym)

		first, _ := alphabet.Encode(window[0])
		hg.nodeFor(src).outMask |= 1 << sym
		hg.nodeFor(dst).inMask |= 1 << first
	}
}

// contig is one maximal non-branching path pulled from the small graph,
// alongside the packed k-mer of each node it visits in walk order.
type contig struct {
	seq   string
	kmers []alphabet.Packed
}

// Contigs extracts every maximal non-branching path (unitig) from the
// small graph, in deterministic order (sorted by starting k-mer), per
// step 3: "extract contigs from the small graph."
func (hg *hashGraph) Contigs() []contig {
	starts := make([]alphabet.Packed, 0)
	for p, n := range hg.nodes {
		if n.indegree() != 1 || !hg.hasUniquePredecessorWithSingleOut(p) {
			starts = append(starts, p)
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	visited := make(map[alphabet.Packed]bool, len(hg.nodes))
	var out []contig
	for _, start := range starts {
		if visited[start] {
			continue
		}
		out = append(out, hg.walk(start, visited))
	}
	// Any node not reached (pure cycle with no branch) forms its own
	// closed contig, picked in sorted order for determinism.
	var remaining []alphabet.Packed
	for p := range hg.nodes {
		if !visited[p] {
			remaining = append(remaining, p)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })
	for _, p := range remaining {
		if visited[p] {
			continue
		}
		out = append(out, hg.walk(p, visited))
	}
	return out
}

func (hg *hashGraph) hasUniquePredecessorWithSingleOut(p alphabet.Packed) bool {
	n := hg.nodes[p]
	if n.indegree() != 1 {
		return false
	}
	pred := hg.uniquePredecessor(p, n)
	predNode, ok := hg.nodes[pred]
	return ok && predNode.outdegree() == 1
}

// uniquePredecessor reconstructs the one node that has an edge into p,
// given n.inMask has exactly one bit set: the predecessor's own k-mer is
// that symbol prepended to p's first k-1 symbols (p's last symbol is
// discarded, since it belongs to p, not the predecessor).
func (hg *hashGraph) uniquePredecessor(p alphabet.Packed, n *hashNode) alphabet.Packed {
	sym := alphabet.Symbol(firstSetBit(n.inMask))
	prefix := p >> alphabet.Bits // p's first k-1 symbols
	return alphabet.Packed(sym)<<(alphabet.Bits*uint(hg.k-1)) | prefix
}

func firstSetBit(b uint8) int {
	for i := 0; i < 8; i++ {
		if b&(1<<i) != 0 {
			return i
		}
	}
	return -1
}

// walk follows single outgoing edges from start until a branch, a dead
// end, or a node with indegree != 1 is reached, marking every visited node.
func (hg *hashGraph) walk(start alphabet.Packed, visited map[alphabet.Packed]bool) contig {
	kmers := []alphabet.Packed{start}
	visited[start] = true
	seq := alphabet.Unpack(start, hg.k)

	cur := start
	for {
		n := hg.nodes[cur]
		if n.outdegree() != 1 {
			break
		}
		sym := alphabet.Symbol(firstSetBit(n.outMask))
		next := alphabet.AppendSymbol(cur, hg.k, sym)
		nextNode, ok := hg.nodes[next]
		if !ok || nextNode.indegree() != 1 || visited[next] {
			break
		}
		visited[next] = true
		kmers = append(kmers, next)
		seq += string(alphabet.Decode(sym))
		cur = next
	}
	return contig{seq: seq, kmers: kmers}
}
