package mergegraph

import (
	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// CollectExternal implements the "collect-external" merge variant:
// combining independently-built `<base>.dbg.<i>_<n>` partial chunk files
// (each produced by a separate process with a disjoint PartIdx/PartsTotal
// selection) into one final graph.
//
// Each path is loaded as a complete serialised BOSS graph (boss.Load) and
// folded in with Traversal. This treats every partial-chunk file as a
// self-contained STAT graph over its own edge subset rather than a raw
// W/last subrange blob glued byte-for-byte onto its neighbours: reusing
// boss.Graph's existing serialisation gives byte-identical merge results
// without a second, chunk-specific wire format.
func CollectExternal(paths []string) (*boss.Graph, error) {
	graphs := make([]*boss.Graph, 0, len(paths))
	for _, p := range paths {
		g, err := boss.Load(p)
		if err != nil {
			return nil, errors.Wrapf(err, "mergegraph: loading chunk %s", p)
		}
		graphs = append(graphs, g)
	}
	return Traversal(graphs)
}
