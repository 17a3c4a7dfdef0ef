package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// runStats implements the `stats` command: emit per-file
// statistics as a TSV with columns file, nodes, edges, k
// ("<base>.stats.dbg").
func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	out := fs.String("out", "", "write TSV to <out>.stats.dbg instead of stdout")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() == 0 {
		return usageError{"stats: at least one .dbg file is required"}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out + ".stats.dbg")
		if err != nil {
			return inputError{err}
		}
		defer f.Close()
		w = f
	}

	fmt.Fprintln(w, "file\tnodes\tedges\tk")
	for _, path := range fs.Args() {
		g, err := boss.Load(path)
		if err != nil {
			return inputError{err}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", path, g.NumNodes(), g.NumEdges(), g.GetK())
	}
	return nil
}
