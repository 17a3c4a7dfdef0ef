package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/michalkowalski94/metagraph/pkg/annotate"
	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/ingest"
	"github.com/michalkowalski94/metagraph/pkg/querygraph"
)

// runClassify implements the `classify` command: query labels for
// sequences via the batched query engine.
func runClassify(args []string) error {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	batchSize := fs.Int("batch-size-bytes", 100<<20, "batch accumulation size in bytes")
	discovery := fs.Float64("discovery-fraction", 0, "minimum per-sequence hit rate to keep a shared k-mer")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 3 {
		return usageError{"classify: usage: classify <graph.dbg> <annotation.anno.dbg> <queries>"}
	}

	g, err := boss.Load(fs.Arg(0))
	if err != nil {
		return inputError{err}
	}
	ann, err := annotate.Load(fs.Arg(1))
	if err != nil {
		return inputError{err}
	}
	labels, err := loadLabelIndex(fs.Arg(1))
	if err != nil {
		return err
	}
	queries, err := readSequenceFile(fs.Arg(2))
	if err != nil {
		return err
	}

	opts := querygraph.Options{K: g.GetK(), BatchSizeBytes: *batchSize, DiscoveryFraction: *discovery}
	acc := querygraph.NewAccumulator(opts)

	flush := func(batch []ingest.Sequence) error {
		if len(batch) == 0 {
			return nil
		}
		results, _, err := querygraph.BuildQueryGraph(g, ann, labels, batch, opts)
		if err != nil {
			return err
		}
		for _, r := range results {
			printClassifyResult(r)
		}
		return nil
	}

	for _, q := range queries {
		if acc.Add(q) {
			if err := flush(acc.Flush()); err != nil {
				return err
			}
		}
	}
	return flush(acc.Flush())
}

func printClassifyResult(r querygraph.SequenceResult) {
	fmt.Printf("%s\thit_rate=%.3f\t", r.Label, r.HitRate)
	seen := make(map[string]bool)
	var union []string
	for _, labels := range r.Labels {
		for _, l := range labels {
			if !seen[l] {
				seen[l] = true
				union = append(union, l)
			}
		}
	}
	fmt.Println(strings.Join(union, ","))
}

// loadLabelIndex reconstructs a LabelEncoder from the "<out>.labels.tsv"
// side file written by `annotate`, so classify can decode column indices
// back into label names. LabelEncoder assigns columns in first-Encode-wins
// order, so labels are replayed in ascending column order to reproduce
// the original name-to-column assignment.
func loadLabelIndex(annoPath string) (*annotate.LabelEncoder, error) {
	base := strings.TrimSuffix(annoPath, ".anno.dbg")
	path := base + ".labels.tsv"

	f, err := os.Open(path)
	if err != nil {
		return nil, inputError{err}
	}
	defer f.Close()

	byCol := make(map[int]string)
	max := -1
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		label, colStr, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		col, err := strconv.Atoi(colStr)
		if err != nil {
			continue
		}
		byCol[col] = label
		if col > max {
			max = col
		}
	}
	if err := sc.Err(); err != nil {
		return nil, inputError{err}
	}

	encoder := annotate.NewLabelEncoder()
	for c := 0; c <= max; c++ {
		name, ok := byCol[c]
		if !ok {
			name = fmt.Sprintf("__missing_%d", c)
		}
		encoder.Encode(name)
	}
	return encoder, nil
}
