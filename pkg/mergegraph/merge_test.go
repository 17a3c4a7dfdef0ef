package mergegraph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalkowalski94/metagraph/pkg/boss"
)

func newSTATGraph(t *testing.T, k int, seqs ...string) *boss.Graph {
	t.Helper()
	g := boss.NewGraph(k)
	for _, s := range seqs {
		require.NoError(t, g.AddSequence(s))
	}
	require.NoError(t, g.SwitchState(boss.StateStat))
	return g
}

func serializeBytes(t *testing.T, g *boss.Graph) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, g.WriteTo(&buf))
	return buf.Bytes()
}

func TestMergeRejectsEmptyInput(t *testing.T) {
	_, err := Traversal(nil)
	assert.ErrorIs(t, err, ErrNoGraphs)

	_, err = Blocked(nil, 1)
	assert.ErrorIs(t, err, ErrNoGraphs)
}

func TestMergeRejectsKMismatch(t *testing.T) {
	a := newSTATGraph(t, 3, "ACGTACGT")
	b := newSTATGraph(t, 4, "ACGTACGTAC")

	_, err := Traversal([]*boss.Graph{a, b})
	assert.ErrorIs(t, err, ErrKMismatch)
}

func TestBlockedWithOnePartEqualsTraversal(t *testing.T) {
	a := newSTATGraph(t, 4, "ACGTACGTACGT")
	b := newSTATGraph(t, 4, "GGGGCCCCAAAATTTT")

	viaTraversal, err := Traversal([]*boss.Graph{a, b})
	require.NoError(t, err)

	c := newSTATGraph(t, 4, "ACGTACGTACGT")
	d := newSTATGraph(t, 4, "GGGGCCCCAAAATTTT")
	viaBlocked, err := Blocked([]*boss.Graph{c, d}, 1)
	require.NoError(t, err)

	assert.Equal(t, serializeBytes(t, viaTraversal), serializeBytes(t, viaBlocked))
}

func TestBlockedIsInvariantToPartCount(t *testing.T) {
	makeInputs := func() []*boss.Graph {
		return []*boss.Graph{
			newSTATGraph(t, 4, "ACGTACGTACGT"),
			newSTATGraph(t, 4, "TTTTACGACGTG"),
		}
	}

	onePart, err := Blocked(makeInputs(), 1)
	require.NoError(t, err)
	fourParts, err := Blocked(makeInputs(), 4)
	require.NoError(t, err)

	assert.Equal(t, onePart.NumEdges(), fourParts.NumEdges())
	assert.Equal(t, onePart.NumNodes(), fourParts.NumNodes())
	assert.Equal(t, serializeBytes(t, onePart), serializeBytes(t, fourParts))
}

func TestBlockedFourWaySplitMatchesTraversal(t *testing.T) {
	a := newSTATGraph(t, 5, "ACGTACGTACGTGGGGT")
	b := newSTATGraph(t, 5, "TTTTACGACGTGCCCCA")

	viaTraversal, err := Traversal([]*boss.Graph{a, b})
	require.NoError(t, err)

	c := newSTATGraph(t, 5, "ACGTACGTACGTGGGGT")
	d := newSTATGraph(t, 5, "TTTTACGACGTGCCCCA")
	viaBlocked, err := Blocked([]*boss.Graph{c, d}, 4)
	require.NoError(t, err)

	assert.Equal(t, serializeBytes(t, viaTraversal), serializeBytes(t, viaBlocked))
}

func TestDumpAdjacencyListOneLinePerEdge(t *testing.T) {
	g := newSTATGraph(t, 3, "ACGTACGTACGT")
	var buf bytes.Buffer
	require.NoError(t, DumpAdjacencyList(g, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, int(g.NumEdges()), len(lines))
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 3)
	}
}

func TestCollectExternalMatchesTraversalOfSameGraphs(t *testing.T) {
	a := newSTATGraph(t, 3, "ACGTACGTACGT")
	b := newSTATGraph(t, 3, "GGGGCCCCAAAA")

	direct, err := Traversal([]*boss.Graph{a, b})
	require.NoError(t, err)

	dir := t.TempDir()
	pathA := dir + "/a.dbg"
	pathB := dir + "/b.dbg"
	require.NoError(t, a.Serialize(pathA))
	require.NoError(t, b.Serialize(pathB))

	viaFiles, err := CollectExternal([]string{pathA, pathB})
	require.NoError(t, err)

	assert.Equal(t, serializeBytes(t, direct), serializeBytes(t, viaFiles))
}
