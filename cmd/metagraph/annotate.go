package main

import (
	"bufio"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/annotate"
	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// runAnnotate implements the `annotate` command: build an
// annotation matrix for a BOSS graph from a label-tagged sequence file
// (one "label\tsequence" pair per line — the VCF/FASTA label-prefixing
// convention of (c) is a property of the out-of-scope ingestion
// collaborator, not of this command).
func runAnnotate(args []string) error {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	out := fs.String("out", "graph", "output base path")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return usageError{"annotate: usage: annotate <graph.dbg> <labels-file>"}
	}

	g, err := boss.Load(fs.Arg(0))
	if err != nil {
		return inputError{err}
	}
	pairs, err := readLabeledSequences(fs.Arg(1))
	if err != nil {
		return err
	}

	encoder := annotate.NewLabelEncoder()
	colKmers := make(map[int]map[string]bool)
	for _, p := range pairs {
		col := encoder.Encode(p.label)
		set := colKmers[col]
		if set == nil {
			set = make(map[string]bool)
			colKmers[col] = set
		}
		k := g.GetK()
		for i := 0; i+k+1 <= len(p.seq); i++ {
			window := p.seq[i : i+k+1]
			if alphabet.IsValidDNA(window) {
				set[window] = true
			}
		}
	}

	numRows := int(g.NumEdges())
	numCols := encoder.NumLabels()
	has := func(row, col int) bool {
		edgeIdx := uint64(row + 1)
		kmer := g.GetNodeSequence(edgeIdx) + string(alphabet.Decode(g.LastSymbol(edgeIdx)))
		return colKmers[col][kmer]
	}
	brwt := annotate.BuildFromMatrix(numRows, numCols, has)

	if err := brwt.Serialize(*out + ".anno.dbg"); err != nil {
		return err
	}
	return writeLabelIndex(*out+".labels.tsv", encoder)
}

type labeledSeq struct {
	label string
	seq   string
}

func readLabeledSequences(path string) ([]labeledSeq, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError{err}
	}
	defer f.Close()

	var out []labeledSeq
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, seq, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, inputError{errNotTabSeparated}
		}
		out = append(out, labeledSeq{label: label, seq: seq})
	}
	if err := sc.Err(); err != nil {
		return nil, inputError{err}
	}
	return out, nil
}

func writeLabelIndex(path string, encoder *annotate.LabelEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, label := range encoder.Labels() {
		col, _ := encoder.Lookup(label)
		if _, err := w.WriteString(label + "\t" + strconv.Itoa(col) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
