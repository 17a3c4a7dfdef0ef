package main

import (
	"flag"
	"fmt"

	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// runAlign implements the `align` command: map query sequences
// against a loaded BOSS graph, printing one line per query sequence with
// the edge index reached at every position (boss.Npos where the walk
// cannot continue).
func runAlign(args []string) error {
	fs := flag.NewFlagSet("align", flag.ContinueOnError)
	anchorLen := fs.Int("anchor", 0, "minimum anchor length (0 = k)")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return usageError{"align: usage: align <graph.dbg> <queries>"}
	}

	g, err := boss.Load(fs.Arg(0))
	if err != nil {
		return inputError{err}
	}
	queries, err := readSequenceFile(fs.Arg(1))
	if err != nil {
		return err
	}

	a := *anchorLen
	if a <= 0 {
		a = g.GetK()
	}
	for _, q := range queries {
		path := g.Align(q.Data, a)
		fmt.Printf("%s\t", q.Data)
		for i, idx := range path {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Print(idx)
		}
		fmt.Println()
	}
	return nil
}
