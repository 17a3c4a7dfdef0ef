package main

import (
	"fmt"
	"os"
)

// Subcommand dispatch and flag parsing are deliberately thin: a flag-only
// dispatcher rather than a subcommand framework.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "merge":
		err = runMerge(os.Args[2:])
	case "compare":
		err = runCompare(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "transform":
		err = runTransform(os.Args[2:])
	case "align":
		err = runAlign(os.Args[2:])
	case "annotate":
		err = runAnnotate(os.Args[2:])
	case "classify":
		err = runClassify(os.Args[2:])
	case "filter":
		err = runFilter(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "metagraph: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "metagraph: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: metagraph <command> [options]

commands:
  build      produce a BOSS graph from DNA-sequence input
  merge      combine two or more BOSS graphs
  compare    check two BOSS graphs for exact equality
  stats      print per-file graph statistics
  transform  convert a BOSS graph to another representation
  align      map query sequences against a BOSS graph
  annotate   build an annotation matrix for a BOSS graph
  classify   query labels for sequences via the batched query engine
  filter     drop reads containing low-frequency k-mers`)
}
