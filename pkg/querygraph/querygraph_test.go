package querygraph

import (
	"testing"

	"github.com/michalkowalski94/metagraph/pkg/annotate"
	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/ingest"
)

func TestHashGraphContigsCoverLinearSequence(t *testing.T) {
	hg := newHashGraph(3)
	hg.AddSequence("ACGTACGA")
	contigs := hg.Contigs()
	if len(contigs) == 0 {
		t.Fatal("Contigs() returned nothing for a non-empty sequence")
	}
	var totalKmers int
	for _, c := range contigs {
		totalKmers += len(c.kmers)
	}
	if totalKmers != len(hg.nodes) {
		t.Fatalf("contigs cover %d nodes, want %d (every node visited exactly once)", totalKmers, len(hg.nodes))
	}
}

func TestHashGraphContigsAreDeterministic(t *testing.T) {
	hg1 := newHashGraph(3)
	hg1.AddSequence("ACGTACGATTTAGGG")
	hg2 := newHashGraph(3)
	hg2.AddSequence("ACGTACGATTTAGGG")

	c1 := hg1.Contigs()
	c2 := hg2.Contigs()
	if len(c1) != len(c2) {
		t.Fatalf("contig count differs across runs: %d vs %d", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i].seq != c2[i].seq {
			t.Fatalf("contig %d differs across runs: %q vs %q", i, c1[i].seq, c2[i].seq)
		}
	}
}

func TestHashGraphBranchSplitsContigs(t *testing.T) {
	// Edges AAC and GAC both enter node AC, which therefore has two
	// distinct predecessors (AA and GA), so no single unbranched path
	// covers both.
	hg := newHashGraph(2)
	hg.AddSequence("AACT")
	hg.AddSequence("GACT")
	contigs := hg.Contigs()
	if len(contigs) < 2 {
		t.Fatalf("expected at least 2 contigs at a branch point, got %d", len(contigs))
	}
}

func buildAnnotatedGraph(t *testing.T, k int, seqs []string) (*boss.Graph, *annotate.BRWT, *annotate.LabelEncoder) {
	t.Helper()
	g := boss.NewGraph(k)
	for _, s := range seqs {
		if err := g.AddSequence(s); err != nil {
			t.Fatalf("AddSequence: %v", err)
		}
	}
	if err := g.SwitchState(boss.StateStat); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}

	encoder := annotate.NewLabelEncoder()
	col := encoder.Encode("ref1")
	numRows := int(g.NumEdges())
	has := func(row, c int) bool { return c == col }
	brwt := annotate.BuildFromMatrix(numRows, encoder.NumLabels(), has)
	return g, brwt, encoder
}

func TestBuildQueryGraphRejectsEmptyBatch(t *testing.T) {
	g, ann, enc := buildAnnotatedGraph(t, 3, []string{"ACGTACGTACGT"})
	_, _, err := BuildQueryGraph(g, ann, enc, nil, Options{K: 3})
	if err != ErrEmptyBatch {
		t.Fatalf("BuildQueryGraph(empty) = %v, want ErrEmptyBatch", err)
	}
}

func TestBuildQueryGraphLabelsMatchedKmers(t *testing.T) {
	seqs := []string{"ACGTACGTACGTAAAA"}
	g, ann, enc := buildAnnotatedGraph(t, 3, seqs)

	batch := []ingest.Sequence{{Label: "query1", Data: "ACGTACGTACGT"}}
	results, unique, err := BuildQueryGraph(g, ann, enc, batch, Options{K: 3})
	if err != nil {
		t.Fatalf("BuildQueryGraph: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results len = %d, want 1", len(results))
	}
	r := results[0]
	if r.Label != "query1" {
		t.Fatalf("Label = %q, want query1", r.Label)
	}
	if r.HitRate <= 0 {
		t.Fatalf("HitRate = %f, want > 0 for a sequence present in the reference", r.HitRate)
	}
	if unique.NumRows() == 0 {
		t.Fatal("expected unique row annotator to have accumulated rows")
	}

	foundLabel := false
	for _, labels := range r.Labels {
		for _, l := range labels {
			if l == "ref1" {
				foundLabel = true
			}
		}
	}
	if !foundLabel {
		t.Fatal("expected at least one position to carry the ref1 label")
	}
}

func TestAccumulatorFlushesAtByteBudget(t *testing.T) {
	acc := NewAccumulator(Options{BatchSizeBytes: 10})
	full := acc.Add(ingest.Sequence{Data: "ACGTACGT"})
	if full {
		t.Fatal("Add should not report full below the byte budget")
	}
	full = acc.Add(ingest.Sequence{Data: "ACGT"})
	if !full {
		t.Fatal("Add should report full once the byte budget is reached")
	}
	batch := acc.Flush()
	if len(batch) != 2 {
		t.Fatalf("Flush returned %d sequences, want 2", len(batch))
	}
	if len(acc.Flush()) != 0 {
		t.Fatal("Flush should clear the pending batch")
	}
}

func TestDiscoveryFractionMasksLowHitSequences(t *testing.T) {
	seqs := []string{"ACGTACGTACGTAAAA"}
	g, ann, enc := buildAnnotatedGraph(t, 3, seqs)

	batch := []ingest.Sequence{
		{Label: "noise", Data: "GGGGGGGGGGGGGGGG"}, // no overlap with the reference
	}
	results, _, err := BuildQueryGraph(g, ann, enc, batch, Options{K: 3, DiscoveryFraction: 0.5})
	if err != nil {
		t.Fatalf("BuildQueryGraph: %v", err)
	}
	if results[0].HitRate != 0 {
		t.Fatalf("HitRate = %f, want 0 for a sequence absent from the reference", results[0].HitRate)
	}
	for _, labels := range results[0].Labels {
		if labels != nil {
			t.Fatal("expected every position masked out for a below-threshold sequence")
		}
	}
}
