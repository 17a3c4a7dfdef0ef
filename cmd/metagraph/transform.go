package main

import (
	"flag"
	"os"

	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/mergegraph"
)

// runTransform implements the `transform` command of , e.g.
// "--to-adj-list": convert a BOSS graph to another representation.
func runTransform(args []string) error {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	toAdjList := fs.Bool("to-adj-list", false, "dump the graph as a plain-text adjacency list")
	out := fs.String("out", "", "write to <out>.adjlist instead of stdout")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 1 {
		return usageError{"transform: exactly one .dbg file is required"}
	}
	if !*toAdjList {
		return usageError{"transform: one of the transform flags (-to-adj-list) is required"}
	}

	g, err := boss.Load(fs.Arg(0))
	if err != nil {
		return inputError{err}
	}

	w := os.Stdout
	if *out != "" {
		f, createErr := os.Create(*out + ".adjlist")
		if createErr != nil {
			return inputError{createErr}
		}
		defer f.Close()
		w = f
	}
	return mergegraph.DumpAdjacencyList(g, w)
}
