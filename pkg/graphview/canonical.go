package graphview

import (
	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// CanonicalGraph exposes a boss.Graph in which every query k-mer is looked
// up as itself and as its reverse complement, canonicalising add-sequence,
// map, and traverse operations before dispatch. Only valid
// over a graph built in canonical mode (the underlying graph was inserted
// with both a sequence and its reverse complement
// `reverse_complement` note); CanonicalGraph does not itself re-insert
// reverse complements, it only canonicalises lookups against whatever the
// underlying graph already contains.
type CanonicalGraph struct {
	g *boss.Graph
}

// NewCanonicalGraph wraps g, which must have been constructed in
// canonical mode.
func NewCanonicalGraph(g *boss.Graph) *CanonicalGraph {
	return &CanonicalGraph{g: g}
}

// Underlying returns the wrapped graph.
func (c *CanonicalGraph) Underlying() *boss.Graph { return c.g }

// Canonicalize returns s's canonical form: the lexicographically smaller
// of s and its reverse complement.
func Canonicalize(s string) string {
	rc := alphabet.ReverseComplement(s)
	if rc < s {
		return rc
	}
	return s
}

// KmerToEdge looks up s by its canonical form.
func (c *CanonicalGraph) KmerToEdge(s string) uint64 {
	return c.g.KmerToEdge(Canonicalize(s))
}

// AddSequence inserts s's canonical form into the underlying DYN graph.
func (c *CanonicalGraph) AddSequence(s string) error {
	return c.g.AddSequence(Canonicalize(s))
}

// Align maps seq against the underlying graph by its canonical form,
// since a canonical graph's edges only ever represent one strand's
// orientation per k-mer pair.
func (c *CanonicalGraph) Align(seq string, a int) []uint64 {
	return c.g.Align(Canonicalize(seq), a)
}

// Traverse delegates directly to the underlying graph: once an edge index
// is known, it already denotes a position in canonical space, so
// index-based navigation needs no re-canonicalisation — only the
// string-keyed entry points (KmerToEdge, AddSequence, Align) do.
func (c *CanonicalGraph) Traverse(i uint64, sym alphabet.Symbol) uint64 {
	return c.g.Traverse(i, sym)
}
