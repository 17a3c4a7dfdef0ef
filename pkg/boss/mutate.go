package boss

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/succinct"
)

// coLexKey packs kmer reversed, so plain integer comparison of the result
// yields co-lexicographic order (compare from the last character
// backward) — the order BOSS's W/last arrays are maintained in.
func coLexKey(kmer string) alphabet.Packed {
	rev := make([]byte, len(kmer))
	for i := 0; i < len(kmer); i++ {
		rev[i] = kmer[len(kmer)-1-i]
	}
	return alphabet.Pack(string(rev))
}

// sortKey orders edges first by their source node's co-lex key, then by
// outgoing symbol: last[i]=1 at the last outgoing edge of each node in
// this order.
func sortKey(sourceKmer string, symbol alphabet.Symbol) uint64 {
	return uint64(coLexKey(sourceKmer))*uint64(alphabet.Size) + uint64(symbol)
}

// KmerToEdge returns the edge index whose (k+1)-mer equals s, or Npos if
// no such edge exists or s is not valid over the alphabet.
func (g *Graph) KmerToEdge(s string) uint64 {
	if len(s) != g.k+1 {
		return Npos
	}
	if !alphabet.IsValidDNA(s) && s != "" {
		// allow the sentinel '$' to appear in dummy edges but reject any
		// other out-of-alphabet byte.
		for i := 0; i < len(s); i++ {
			if s[i] == '$' {
				continue
			}
			if _, ok := alphabet.Encode(s[i]); !ok {
				return Npos
			}
		}
	}
	packed, ok := packKPlus1(s)
	if !ok {
		return Npos
	}
	if g.state == StateDyn {
		if idx, ok := g.kmerIndex[packed]; ok {
			return idx
		}
		return Npos
	}
	// STAT: fall back to a navigational lookup, since the dedicated index
	// is only maintained during DYN construction.
	return g.kmerToEdgeStat(s)
}

func packKPlus1(s string) (alphabet.Packed, bool) {
	var p alphabet.Packed
	for i := 0; i < len(s); i++ {
		sym, ok := alphabet.Encode(s[i])
		if !ok {
			if s[i] == '$' {
				sym = alphabet.Sentinel
			} else {
				return 0, false
			}
		}
		p = p<<alphabet.Bits | alphabet.Packed(sym)
	}
	return p, true
}

// kmerToEdgeStat walks the STAT graph's navigation structure to locate the
// edge for the (k+1)-mer s, used once DYN bookkeeping has been dropped.
func (g *Graph) kmerToEdgeStat(s string) uint64 {
	if len(s) != g.k+1 {
		return Npos
	}
	// There is no separate node index in this port, so scan every edge
	// and compare its reconstructed (k+1)-mer against s.
	n := g.NumEdges()
	for i := uint64(1); i <= n; i++ {
		seq := g.GetNodeSequence(i)
		if seq+string(alphabet.Decode(symbolOf(g.wAt(i)))) == s {
			return i
		}
	}
	return Npos
}

// GetNodeSequence returns the k-mer labelling the source node of edge i.
// Every node's backward chain terminates at the dummy sink node
// (all-sentinel), so walking Bwd exactly k times always reaches a real
// predecessor edge; hitting Npos before that means the graph is missing
// its dummy edges and the result would be meaningless.
func (g *Graph) GetNodeSequence(i uint64) string {
	if i == Npos || i > g.NumEdges() {
		panic("boss: GetNodeSequence: npos dereference")
	}
	buf := make([]byte, g.k)
	cur := i
	for pos := g.k - 1; pos >= 0; pos-- {
		c := symbolOf(g.wAt(cur))
		buf[pos] = alphabet.Decode(c)
		cur = g.Bwd(cur)
		if cur == Npos {
			panic("boss: GetNodeSequence: bwd chain terminated before k steps; graph is missing dummy edges")
		}
	}
	return string(buf)
}

// boundarySourceKmer returns the k-length source-node key ending
// immediately before position j of seq, dollar-padded on the left when
// fewer than k real characters precede j. This is the same key
// PaddedKPlus1Mers produces for a read's leading dummy-source windows, so
// a seed anchored before position k can still land on one of them.
func boundarySourceKmer(seq string, j, k int) string {
	lo := j - k
	if lo < 0 {
		lo = 0
	}
	window := seq[lo:j]
	if len(window) == k {
		return window
	}
	pad := k - len(window)
	return strings.Repeat(string(alphabet.Decode(alphabet.Sentinel)), pad) + window
}

// Align maps seq against the graph. The first anchor seeds on a
// length-a window (a<=k, dollar-padded against the graph's dummy source
// edges when a<k or the anchor sits within the first k-1 characters of
// seq); every following position extends the walk by one symbol via
// Traverse. Returns one edge index per position from a-1 to len(seq)-1,
// or Npos wherever the walk cannot continue.
func (g *Graph) Align(seq string, a int) []uint64 {
	if a > g.k {
		a = g.k
	}
	if a < 1 {
		a = 1
	}
	result := make([]uint64, 0, len(seq))
	if len(seq) < a {
		return result
	}
	start := a - 1
	cur := g.KmerToEdge(boundarySourceKmer(seq, start, g.k) + seq[start:start+1])
	result = append(result, cur)
	for j := start + 1; j < len(seq); j++ {
		if cur == Npos {
			result = append(result, Npos)
			continue
		}
		sym, ok := alphabet.Encode(seq[j])
		if !ok {
			cur = Npos
			result = append(result, Npos)
			continue
		}
		cur = g.Traverse(cur, sym)
		result = append(result, cur)
	}
	return result
}

// PaddedKPlus1Mers returns every (k+1)-mer a read of seq contributes to a
// BOSS graph, dummy source edges included: seq is conceptually preceded
// by k sentinel characters, so the first k windows carry a $-padded
// source node before the interior windows begin. The result always has
// len(seq) entries (one per character of seq, each ending a window),
// matching the well-defined dummy edges a full read produces alongside
// its |seq|-k interior edges.
func PaddedKPlus1Mers(seq string, k int) []string {
	if len(seq) == 0 {
		return nil
	}
	padded := strings.Repeat(string(alphabet.Decode(alphabet.Sentinel)), k) + seq
	out := make([]string, 0, len(seq))
	for i := 0; i+k+1 <= len(padded); i++ {
		out = append(out, padded[i:i+k+1])
	}
	return out
}

// AddSequence inserts every (k+1)-mer of DNA string s into a DYN graph,
// including the dummy source edges PaddedKPlus1Mers synthesizes at the
// read's boundary. Each (k+1)-mer is inserted in sorted (source-node
// co-lex, then symbol) position; an edge is marked "minus" (a W high-bit
// duplicate) when its target node has already been reached by some other
// edge.
func (g *Graph) AddSequence(s string) error {
	if g.state != StateDyn {
		return ErrWrongState
	}
	for _, kplus1 := range PaddedKPlus1Mers(s, g.k) {
		g.addEdge(kplus1)
	}
	return nil
}

// InsertEdge inserts a single, already-complete (k+1)-mer edge into a DYN
// graph with no implicit padding. Used by callers that already hold
// boundary-correct edges — the chunked constructor's sorted buckets, a
// graph merge replaying another graph's edges — and would otherwise have
// PaddedKPlus1Mers re-pad an edge that is not a raw read.
func (g *Graph) InsertEdge(kplus1 string) error {
	if g.state != StateDyn {
		return ErrWrongState
	}
	if len(kplus1) != g.k+1 {
		return errors.New("boss: InsertEdge: wrong (k+1)-mer length")
	}
	g.addEdge(kplus1)
	return nil
}

func (g *Graph) addEdge(kplus1 string) {
	packed, ok := packKPlus1(kplus1)
	if !ok {
		return
	}
	if _, exists := g.kmerIndex[packed]; exists {
		return
	}

	sourceKmer := kplus1[:g.k]
	targetKmer := kplus1[1:]
	sym, ok := alphabet.Encode(kplus1[g.k])
	if !ok {
		return
	}
	key := sortKey(sourceKmer, sym)

	p := g.searchInsertPos(key)

	targetPacked, _ := packKPlus1(targetKmer)
	_, targetSeen := g.targetIndex()[targetPacked]
	minus := targetSeen
	if !targetSeen {
		g.targetIndex()[targetPacked] = true
	}

	encoded := int(sym)
	if minus {
		encoded += alphabet.Size
	}

	g.wDyn.insert(p, encoded)
	g.keysDyn = insertKey(g.keysDyn, p, key)

	sameAsNext := p+1 < len(g.keysDyn) && g.keysDyn[p+1]/uint64(alphabet.Size) == key/uint64(alphabet.Size)
	isLast := !sameAsNext
	g.lastDyn.InsertBit(uint64(p), isLast)

	if p > 0 {
		prevSameGroup := g.keysDyn[p-1]/uint64(alphabet.Size) == key/uint64(alphabet.Size)
		if prevSameGroup && g.lastDyn.Get(uint64(p-1)) {
			g.lastDyn.Set(uint64(p-1), false)
		}
	}

	g.reindexFrom(p)
	g.kmerIndex[packed] = uint64(p)
}

// reindexFrom updates every stored kmerIndex entry to account for the
// insertion shift at position p: anything that pointed at or beyond p now
// points one further along. This is O(N) per insertion, appropriate for
// the transient DYN construction phase only.
func (g *Graph) reindexFrom(p int) {
	for k, idx := range g.kmerIndex {
		if int(idx) >= p {
			g.kmerIndex[k] = idx + 1
		}
	}
}

func (g *Graph) searchInsertPos(key uint64) int {
	lo, hi := 1, len(g.keysDyn)
	for lo < hi {
		mid := (lo + hi) / 2
		if g.keysDyn[mid] < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func insertKey(keys []uint64, p int, key uint64) []uint64 {
	keys = append(keys, 0)
	copy(keys[p+1:], keys[p:])
	keys[p] = key
	return keys
}

func (g *Graph) targetIndex() map[alphabet.Packed]bool {
	if g.targetsDyn == nil {
		g.targetsDyn = make(map[alphabet.Packed]bool)
	}
	return g.targetsDyn
}

// SwitchState transitions the graph between DYN and STAT. DYN->STAT
// rebuilds the static rank/select indices over the current content and
// drops the dynamic bookkeeping; it is idempotent and STAT->DYN is
// unsupported (one-way).
func (g *Graph) SwitchState(target State) error {
	if g.state == target {
		return nil
	}
	if target == StateDyn {
		return ErrWrongState
	}
	n := g.wDyn.size()
	seq := make([]alphabet.Symbol, n)
	for i := 0; i < n; i++ {
		seq[i] = alphabet.Symbol(g.wDyn.get(i))
	}
	g.wStat = succinct.NewWaveletTree(seq, 2*alphabet.Size-1)
	g.lastStat = g.lastDyn.Freeze()

	// Rebuild F from the materialised W, since AddSequence only maintains
	// it implicitly via sorted insertion order.
	g.f = make([]uint64, alphabet.Size+1)
	for i := 1; i < n; i++ {
		c := symbolOf(int(seq[i]))
		g.f[c+1]++
	}
	for c := 1; c <= alphabet.Size; c++ {
		g.f[c] += g.f[c-1]
	}

	g.wDyn = nil
	g.lastDyn = nil
	g.kmerIndex = nil
	g.targetsDyn = nil
	g.keysDyn = nil
	g.state = StateStat
	return nil
}

// Merge extends the receiver (which must be DYN) with every edge of
// other, failing with ErrKMismatch if the two graphs were built with
// different k.
func (g *Graph) Merge(other *Graph) error {
	if g.state != StateDyn {
		return ErrWrongState
	}
	if g.k != other.k {
		return ErrKMismatch
	}
	n := other.NumEdges()
	for i := uint64(1); i <= n; i++ {
		kmer := other.GetNodeSequence(i) + string(alphabet.Decode(symbolOf(other.wAt(i))))
		g.addEdge(kmer)
	}
	return nil
}
