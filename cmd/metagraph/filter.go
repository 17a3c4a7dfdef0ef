package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
)

// runFilter implements the `filter` command: drop reads
// containing k-mers with frequency below a threshold, where per-k-mer
// frequency is counted across the reference input itself (a single-pass
// self-referential filter, the common case for adapter/error-kmer
// removal when no separate reference count file is available).
func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	k := fs.Int("k", 0, "k-mer length (required)")
	minFreq := fs.Int("min-freq", 2, "minimum k-mer frequency to keep a read")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *k <= 0 {
		return usageError{"filter: -k is required and must be positive"}
	}
	if fs.NArg() != 1 {
		return usageError{"filter: usage: filter -k <k> <reads>"}
	}

	reads, err := readSequenceFile(fs.Arg(0))
	if err != nil {
		return err
	}

	freq := make(map[alphabet.Packed]int)
	for _, r := range reads {
		for i := 0; i+*k <= len(r.Data); i++ {
			w := r.Data[i : i+*k]
			if alphabet.IsValidDNA(w) {
				freq[alphabet.Pack(w)]++
			}
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, r := range reads {
		if passesMinFreq(r.Data, *k, *minFreq, freq) {
			fmt.Fprintln(out, r.Data)
		}
	}
	return nil
}

// passesMinFreq reports whether every valid k-mer of seq occurs at least
// minFreq times across the reference frequency table.
func passesMinFreq(seq string, k, minFreq int, freq map[alphabet.Packed]int) bool {
	for i := 0; i+k <= len(seq); i++ {
		w := seq[i : i+k]
		if !alphabet.IsValidDNA(w) {
			continue
		}
		if freq[alphabet.Pack(w)] < minFreq {
			return false
		}
	}
	return true
}
