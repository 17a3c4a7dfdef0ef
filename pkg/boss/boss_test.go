package boss

import (
	"bytes"
	"testing"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
)

func buildTestGraph(t *testing.T, k int, seqs ...string) *Graph {
	t.Helper()
	g := NewGraph(k)
	for _, s := range seqs {
		if err := g.AddSequence(s); err != nil {
			t.Fatalf("AddSequence(%q): %v", s, err)
		}
	}
	return g
}

func TestAddSequenceBasicNavigation(t *testing.T) {
	g := buildTestGraph(t, 3, "ACGTACGT")
	if g.NumEdges() == 0 {
		t.Fatal("expected at least one edge after AddSequence")
	}
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}
	if g.State() != StateStat {
		t.Fatalf("State() = %v, want STAT", g.State())
	}

	edge := g.KmerToEdge("ACGT")
	if edge == Npos {
		t.Fatal("KmerToEdge(ACGT) = Npos, want a real edge")
	}
	seq := g.GetNodeSequence(edge)
	if len(seq) != 3 {
		t.Fatalf("GetNodeSequence returned %q, want length 3", seq)
	}
}

func TestSwitchStateIsOneWay(t *testing.T) {
	g := buildTestGraph(t, 3, "ACGTACGT")
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState(STAT): %v", err)
	}
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("idempotent SwitchState(STAT) should not error: %v", err)
	}
	if err := g.SwitchState(StateDyn); err != ErrWrongState {
		t.Fatalf("SwitchState(DYN) after STAT = %v, want ErrWrongState", err)
	}
}

func TestAddSequenceRequiresDynState(t *testing.T) {
	g := buildTestGraph(t, 3, "ACGTACGT")
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}
	if err := g.AddSequence("ACGTACGT"); err != ErrWrongState {
		t.Fatalf("AddSequence on STAT graph = %v, want ErrWrongState", err)
	}
}

func TestMergeRequiresMatchingK(t *testing.T) {
	a := buildTestGraph(t, 3, "ACGTACGT")
	b := buildTestGraph(t, 4, "ACGTACGTAC")
	if err := a.Merge(b); err != ErrKMismatch {
		t.Fatalf("Merge with mismatched k = %v, want ErrKMismatch", err)
	}
}

func TestMergeUnionsEdges(t *testing.T) {
	a := buildTestGraph(t, 3, "ACGTACGT")
	b := buildTestGraph(t, 3, "TTTTACGA")
	beforeA := a.NumEdges()
	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if a.NumEdges() < beforeA {
		t.Fatalf("Merge should not shrink edge count: before=%d after=%d", beforeA, a.NumEdges())
	}
}

func TestAlignFollowsSequence(t *testing.T) {
	g := buildTestGraph(t, 3, "ACGTACGTACGT")
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}
	path := g.Align("ACGTACGTACGT", 3)
	if len(path) == 0 {
		t.Fatal("Align returned no positions")
	}
	if path[0] == Npos {
		t.Fatal("Align: first anchor should resolve for a sequence used to build the graph")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := buildTestGraph(t, 3, "ACGTACGTACGT", "GGGGCCCCAAAA")
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}

	var buf bytes.Buffer
	if err := g.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	loaded, err := ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if loaded.GetK() != g.GetK() {
		t.Fatalf("loaded k = %d, want %d", loaded.GetK(), g.GetK())
	}
	if loaded.NumEdges() != g.NumEdges() {
		t.Fatalf("loaded NumEdges = %d, want %d", loaded.NumEdges(), g.NumEdges())
	}
	if loaded.NumNodes() != g.NumNodes() {
		t.Fatalf("loaded NumNodes = %d, want %d", loaded.NumNodes(), g.NumNodes())
	}

	var buf2 bytes.Buffer
	if err := loaded.WriteTo(&buf2); err != nil {
		t.Fatalf("re-WriteTo: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), buf2.Bytes()) {
		t.Fatal("round-tripped graph does not serialize back to identical bytes")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("XXXXjunk")))
	if err != ErrInvalidMagic {
		t.Fatalf("ReadFrom with bad magic = %v, want ErrInvalidMagic", err)
	}
}

func TestAddSequenceSynthesizesDummyEdges(t *testing.T) {
	g := buildTestGraph(t, 3, "AAACGT")
	if g.NumEdges() != 7 {
		t.Fatalf("NumEdges() = %d, want 7 (1 dummy sink + 6 dollar-padded/interior windows)", g.NumEdges())
	}

	sym, ok := alphabet.Encode('$')
	if !ok {
		t.Fatal("Encode('$') failed")
	}
	if g.LastSymbol(1) != sym {
		t.Fatalf("LastSymbol(1) = %v, want the sentinel symbol (dummy sink)", g.LastSymbol(1))
	}

	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}

	if edge := g.KmerToEdge("AACG"); edge == Npos {
		t.Fatal("KmerToEdge(AACG) = Npos, want a real edge")
	}

	path := g.Align("AAACGT", 3)
	if len(path) != 4 {
		t.Fatalf("Align(\"AAACGT\", 3) returned %d positions, want 4", len(path))
	}
	for i, idx := range path {
		if idx == Npos {
			t.Fatalf("Align path[%d] = Npos, want a resolved edge for a sequence used to build the graph", i)
		}
	}
}

func TestOutdegreeAndTraverse(t *testing.T) {
	g := buildTestGraph(t, 2, "ACGACT")
	if err := g.SwitchState(StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}
	edge := g.KmerToEdge("ACG")
	if edge == Npos {
		t.Skip("ACG edge not present for this k/seq combination")
	}
	if g.Outdegree(edge) == 0 {
		t.Fatal("Outdegree should be positive for a node with outgoing edges")
	}
	sym, _ := alphabet.Encode('A')
	_ = g.Traverse(edge, sym) // must not panic regardless of result
}
