package main

import (
	"flag"

	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/mergegraph"
)

// runMerge implements the `merge` command: combine >=2 BOSS
// graphs via traversal, blocked, or collect-external variants; requires
// matching k (enforced by pkg/mergegraph).
func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	mode := fs.String("mode", "traversal", "traversal | blocked | collect-external")
	partsTotal := fs.Int("parts-total", 1, "block count for -mode blocked")
	out := fs.String("out", "merged", "output base path")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() < 2 {
		return usageError{"merge: at least two input .dbg files are required"}
	}

	var merged *boss.Graph
	var err error
	switch *mode {
	case "collect-external":
		merged, err = mergegraph.CollectExternal(fs.Args())
	case "blocked":
		graphs, loadErr := loadGraphs(fs.Args())
		if loadErr != nil {
			return loadErr
		}
		merged, err = mergegraph.Blocked(graphs, *partsTotal)
	case "traversal":
		graphs, loadErr := loadGraphs(fs.Args())
		if loadErr != nil {
			return loadErr
		}
		merged, err = mergegraph.Traversal(graphs)
	default:
		return usageError{"merge: unknown -mode " + *mode}
	}
	if err != nil {
		return err
	}
	return merged.Serialize(*out + ".dbg")
}

func loadGraphs(paths []string) ([]*boss.Graph, error) {
	graphs := make([]*boss.Graph, 0, len(paths))
	for _, p := range paths {
		g, err := boss.Load(p)
		if err != nil {
			return nil, inputError{err}
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}
