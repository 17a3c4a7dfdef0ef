// Package graphview implements mask and canonical graph wrappers: thin
// views over a boss.Graph that delegate navigation to the underlying
// graph and filter or canonicalise around it.
package graphview

import (
	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/succinct"
)

// MaskedGraph shares a boss.Graph and owns a bit mask of length
// num_edges+1 (index 0 reserved as boss.Npos). Every navigation operation
// delegates to the underlying graph and then filters results through the
// mask. NumNodes stays the underlying graph's count, so indices remain
// stable across mask updates.
type MaskedGraph struct {
	g    *boss.Graph
	mask *succinct.DynBitVector
}

// NewMaskedGraph wraps g with an initially all-present mask. The mask uses
// succinct.DynBitVector rather than the LazyBitmap predicate wrapper: a
// mask is explicitly mutated edge-by-edge (SetMasked), which needs plain
// Get/Set, not a recomputed predicate.
func NewMaskedGraph(g *boss.Graph) *MaskedGraph {
	mask := succinct.NewDynBitVector()
	for i := uint64(0); i <= g.NumEdges(); i++ {
		mask.InsertBit(i, true)
	}
	return &MaskedGraph{g: g, mask: mask}
}

// Underlying returns the wrapped graph.
func (m *MaskedGraph) Underlying() *boss.Graph { return m.g }

// NumNodes returns the underlying graph's node count, unaffected by
// masking.
func (m *MaskedGraph) NumNodes() uint64 { return m.g.NumNodes() }

// NumEdges returns the underlying graph's edge count, unaffected by
// masking, for the same reason NumNodes is.
func (m *MaskedGraph) NumEdges() uint64 { return m.g.NumEdges() }

// IsMasked reports whether edge i has been masked out.
func (m *MaskedGraph) IsMasked(i uint64) bool { return !m.mask.Get(i) }

// SetMasked marks edge i as masked out (present=false) or present again.
func (m *MaskedGraph) SetMasked(i uint64, masked bool) { m.mask.Set(i, !masked) }

// Fwd delegates to the underlying graph, returning boss.Npos if the
// result edge is masked out.
func (m *MaskedGraph) Fwd(i uint64) uint64 { return m.filter(m.g.Fwd(i)) }

// Bwd delegates to the underlying graph, returning boss.Npos if the
// result edge is masked out.
func (m *MaskedGraph) Bwd(i uint64) uint64 { return m.filter(m.g.Bwd(i)) }

// Outgoing delegates to the underlying graph, returning boss.Npos if the
// result edge is masked out.
func (m *MaskedGraph) Outgoing(i uint64, c alphabet.Symbol) uint64 {
	return m.filter(m.g.Outgoing(i, c))
}

// Traverse delegates to the underlying graph, returning boss.Npos if the
// result edge is masked out.
func (m *MaskedGraph) Traverse(i uint64, c alphabet.Symbol) uint64 {
	return m.filter(m.g.Traverse(i, c))
}

// Incoming delegates to the underlying graph, invoking cb only for
// predecessors that are not masked out.
func (m *MaskedGraph) Incoming(i uint64, c alphabet.Symbol, cb func(j uint64)) {
	m.g.Incoming(i, c, func(j uint64) {
		if m.mask.Get(j) {
			cb(j)
		}
	})
}

// CallOutgoing delegates to the underlying graph, invoking cb only for
// outgoing edges that are not masked out.
func (m *MaskedGraph) CallOutgoing(i uint64, cb func(j uint64, c alphabet.Symbol)) {
	m.g.CallOutgoing(i, func(j uint64, c alphabet.Symbol) {
		if m.mask.Get(j) {
			cb(j, c)
		}
	})
}

// Outdegree counts only the unmasked outgoing edges of node i.
func (m *MaskedGraph) Outdegree(i uint64) uint64 {
	var n uint64
	m.CallOutgoing(i, func(uint64, alphabet.Symbol) { n++ })
	return n
}

// CallNodes invokes cb once per unmasked edge index, in ascending order
// (SUPPLEMENTED FEATURES item 3: "only call_nodes/iteration and
// neighbor enumeration are filtered").
func (m *MaskedGraph) CallNodes(cb func(i uint64)) {
	n := m.g.NumEdges()
	for i := uint64(1); i <= n; i++ {
		if m.mask.Get(i) {
			cb(i)
		}
	}
}

func (m *MaskedGraph) filter(i uint64) uint64 {
	if i == boss.Npos || !m.mask.Get(i) {
		return boss.Npos
	}
	return i
}
