package mergegraph

import (
	"bufio"
	"fmt"
	"io"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// DumpAdjacencyList streams one "src tgt symbol" line per edge of g, in
// lex (edge-index) order, to w. Written as plain-text adjacency: one edge
// per line, src tgt symbol.
func DumpAdjacencyList(g *boss.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := g.NumEdges()
	for i := uint64(1); i <= n; i++ {
		tgt := g.Fwd(i)
		sym := alphabet.Decode(g.LastSymbol(i))
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%c\n", i, tgt, sym); err != nil {
			return err
		}
	}
	return bw.Flush()
}
