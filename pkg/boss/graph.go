// Package boss implements the succinct edge-centric de Bruijn graph
// representation (the BOSS graph): three logical arrays W, last, F,
// navigable via rank/select, with a mutable DYN state used during
// incremental construction and an immutable STAT state used for queries.
package boss

import (
	"strings"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/succinct"
)

// State is the lifecycle state of a Graph. A graph starts in StateDyn,
// accepts mutation there, and moves one-way to StateStat via SwitchState.
type State uint8

const (
	StateDyn State = iota
	StateStat
)

func (s State) String() string {
	if s == StateStat {
		return "STAT"
	}
	return "DYN"
}

// Graph is a BOSS succinct de Bruijn graph of a fixed node length k. Edge
// indices run 1..NumEdges(); index 0 is the reserved Npos sentinel.
type Graph struct {
	k     int
	state State

	// STAT backing.
	wStat    *succinct.WaveletTree
	lastStat *succinct.StaticBitVector

	// DYN backing.
	wDyn    *dynW
	lastDyn *succinct.DynBitVector

	f []uint64 // length alphabet.Size+1; F[c] = #edges whose last symbol < c

	// kmerIndex supports AddSequence's duplicate-edge detection
	// (kmer_to_edge) while in DYN state.
	kmerIndex map[alphabet.Packed]uint64
	// targetsDyn records which target-node k-mers have already been
	// reached by some edge, to decide the W high ("minus") bit on insert.
	targetsDyn map[alphabet.Packed]bool
	// keysDyn parallels wDyn/lastDyn with each edge's sort key
	// (source-node co-lex order, then symbol), used to find insertion
	// points while in DYN state.
	keysDyn []uint64
}

// NewGraph returns an empty DYN graph of node length k, already carrying
// the single dummy sink edge $^(k+1): a self-loop on the all-sentinel
// node that every add_sequence-padded read's dummy source chain
// eventually walks back to. Because its co-lex sort key is the smallest
// possible (every symbol is the sentinel), it always sorts to edge index
// 1, matching the reserved dummy-sink slot.
func NewGraph(k int) *Graph {
	g := &Graph{
		k:         k,
		state:     StateDyn,
		wDyn:      newDynW(),
		lastDyn:   succinct.NewDynBitVector(),
		f:         make([]uint64, alphabet.Size+1),
		kmerIndex: make(map[alphabet.Packed]uint64),
	}
	// Index 0 is the reserved sentinel; give it a placeholder entry so
	// edge indices start at 1 consistently across DYN and STAT states.
	g.wDyn.insert(0, 0)
	g.lastDyn.InsertBit(0, false)
	g.keysDyn = append(g.keysDyn, 0)
	g.addEdge(strings.Repeat(string(alphabet.Decode(alphabet.Sentinel)), k+1))
	return g
}

func (g *Graph) GetK() int { return g.k }

func (g *Graph) State() State { return g.state }

// NumEdges returns N, the number of real edges (index 0 excluded).
func (g *Graph) NumEdges() uint64 {
	if g.state == StateStat {
		return g.wStat.Size() - 1
	}
	return uint64(g.wDyn.size()) - 1
}

// NumNodes returns the number of distinct nodes, i.e. the number of set
// bits in last.
func (g *Graph) NumNodes() uint64 {
	if g.state == StateStat {
		return g.lastStat.NumOnes()
	}
	return g.lastDyn.NumOnes()
}

func (g *Graph) wAt(i uint64) int {
	if g.state == StateStat {
		return int(g.wStat.Access(i))
	}
	return g.wDyn.get(int(i))
}

func (g *Graph) lastGet(i uint64) bool {
	if g.state == StateStat {
		return g.lastStat.Get(i)
	}
	return g.lastDyn.Get(i)
}

func (g *Graph) lastRank1(i uint64) uint64 {
	if g.state == StateStat {
		return g.lastStat.Rank1(i)
	}
	return g.lastDyn.Rank1(i)
}

func (g *Graph) lastSelect1(k uint64) uint64 {
	if g.state == StateStat {
		return g.lastStat.Select1(k)
	}
	return g.lastDyn.Select1(k)
}

// symbolOf extracts the base alphabet symbol (without the minus/duplicate
// high bit) from a raw W value.
func symbolOf(w int) alphabet.Symbol {
	return alphabet.Symbol(w % alphabet.Size)
}

func isMinus(w int) bool {
	return w >= alphabet.Size
}

// wRank counts occurrences of the exact encoded value (symbol, possibly
// with the minus bit set) in W[1..i].
func (g *Graph) wRank(encoded int, i uint64) uint64 {
	if g.state == StateStat {
		return g.wStat.Rank(alphabet.Symbol(encoded), i)
	}
	return uint64(g.wDyn.rank(encoded, int(i)))
}

// wCombinedRank counts occurrences of base symbol c, plus- or
// minus-encoded, in W[1..i].
func (g *Graph) wCombinedRank(c alphabet.Symbol, i uint64) uint64 {
	return g.wRank(int(c), i) + g.wRank(int(c)+alphabet.Size, i)
}

// wCombinedSelect finds the position of the k-th (1-based) occurrence of
// base symbol c, irrespective of its minus bit, via binary search over the
// monotone wCombinedRank. Returns Npos if fewer than k occurrences of c
// exist at all, rather than clamping to the last edge index.
func (g *Graph) wCombinedSelect(c alphabet.Symbol, k uint64) uint64 {
	n := g.NumEdges()
	if g.wCombinedRank(c, n) < k {
		return Npos
	}
	lo, hi := uint64(1), n
	for lo < hi {
		mid := (lo + hi) / 2
		if g.wCombinedRank(c, mid) < k {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// wMinusRank1 is the rank of the "minus" (duplicate-edge) high bit of W
// over [1, i], summed across every base symbol.
func (g *Graph) wMinusRank1(i uint64) uint64 {
	var total uint64
	for c := 0; c < alphabet.Size; c++ {
		total += g.wRank(c+alphabet.Size, i)
	}
	return total
}

// symbolForEdge returns F^{-1}(i): the symbol c such that F[c] < i <= F[c+1].
func (g *Graph) symbolForEdge(i uint64) alphabet.Symbol {
	lo, hi := 0, alphabet.Size-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if g.f[mid] < i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return alphabet.Symbol(lo)
}

// nodeRange returns the inclusive [lo,hi] range of edge indices sharing the
// source node of edge i.
func (g *Graph) nodeRange(i uint64) (lo, hi uint64) {
	r := g.lastRank1(i)
	hi = g.lastSelect1(r)
	if r == 1 {
		lo = 1
	} else {
		lo = g.lastSelect1(r-1) + 1
	}
	return lo, hi
}

// Fwd returns the edge index of the first outgoing edge of the target node
// of edge i, or Npos if i is out of range.
func (g *Graph) Fwd(i uint64) uint64 {
	if i == Npos || i > g.NumEdges() {
		return Npos
	}
	c := symbolOf(g.wAt(i))
	k := g.wMinusRank1(i) + g.f[c]
	if k == 0 || k > g.NumNodes() {
		return Npos
	}
	return g.lastSelect1(k)
}

// Bwd returns the first incoming edge at the source node of edge i.
func (g *Graph) Bwd(i uint64) uint64 {
	if i == Npos || i > g.NumEdges() {
		return Npos
	}
	c := g.symbolForEdge(i)
	var rank uint64
	if i > 1 {
		rank = g.lastRank1(i-1) + 1
	} else {
		rank = 1
	}
	return g.wCombinedSelect(c, rank)
}

// Outdegree returns the number of outgoing edges of the source node of
// edge i.
func (g *Graph) Outdegree(i uint64) uint64 {
	lo, hi := g.nodeRange(i)
	return hi - lo + 1
}

// Indegree returns the number of incoming edges to the target node of
// edge i.
func (g *Graph) Indegree(i uint64) uint64 {
	t := g.Fwd(i)
	if t == Npos {
		return 0
	}
	c := symbolOf(g.wAt(i))
	hi := g.f[c+1]
	lo := g.f[c]
	// indegree(target) = 1 + number of minus edges among the symbol-c
	// group that resolve to the same target as i.
	var count uint64
	for j := lo + 1; j <= hi; j++ {
		if isMinus(g.wAt(j)) && g.Fwd(j) == t {
			count++
		}
	}
	return 1 + count
}

// Outgoing returns the target edge reached from edge i's source node by
// following base symbol c, or Npos if no such outgoing edge exists.
func (g *Graph) Outgoing(i uint64, c alphabet.Symbol) uint64 {
	lo, hi := g.nodeRange(i)
	for j := lo; j <= hi; j++ {
		if symbolOf(g.wAt(j)) == c {
			return g.Fwd(j)
		}
	}
	return Npos
}

// Incoming invokes cb for every incoming edge to the target node of edge i
// whose base symbol is c, by scanning edges that Fwd to the same target
// and filtering by symbol.
func (g *Graph) Incoming(i uint64, c alphabet.Symbol, cb func(j uint64)) {
	t := g.Fwd(i)
	if t == Npos {
		return
	}
	hi := g.f[c+1]
	lo := g.f[c]
	for j := lo + 1; j <= hi; j++ {
		if g.Fwd(j) == t {
			cb(j)
		}
	}
}

// Traverse follows base symbol c from edge i's target node and returns the
// resulting edge index, or Npos.
func (g *Graph) Traverse(i uint64, c alphabet.Symbol) uint64 {
	target := g.Fwd(i)
	if target == Npos {
		return Npos
	}
	return g.Outgoing(target, c)
}

// LastSymbol returns the last symbol of edge i's (k+1)-mer, i.e. the
// symbol labelling edge i itself (as opposed to an edge leaving i's target
// node).
func (g *Graph) LastSymbol(i uint64) alphabet.Symbol {
	if i == Npos || i > g.NumEdges() {
		panic("boss: LastSymbol: npos dereference")
	}
	return symbolOf(g.wAt(i))
}

// CallOutgoing invokes cb(j, c) for every outgoing edge j of edge i's
// source node, with c the base symbol labelling j.
func (g *Graph) CallOutgoing(i uint64, cb func(j uint64, c alphabet.Symbol)) {
	lo, hi := g.nodeRange(i)
	for j := lo; j <= hi; j++ {
		cb(j, symbolOf(g.wAt(j)))
	}
}
