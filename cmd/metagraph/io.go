package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/michalkowalski94/metagraph/pkg/ingest"
)

// readSequenceFile reads one DNA sequence per non-empty, non-comment line
// of path, labelling each with path. FASTA/FASTQ/VCF parsing is an
// out-of-scope collaborator; this driver only needs something
// concrete to feed pkg/ingest.SliceSource, so it accepts the simplest
// contract that collaborator could satisfy: pre-extracted sequences, one
// per line.
func readSequenceFile(path string) ([]ingest.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError{err}
	}
	defer f.Close()

	var seqs []ingest.Sequence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") {
			continue
		}
		seqs = append(seqs, ingest.Sequence{Data: line, Label: path})
	}
	if err := sc.Err(); err != nil {
		return nil, inputError{err}
	}
	return seqs, nil
}

func readSequenceFiles(paths []string) ([]ingest.Sequence, error) {
	var out []ingest.Sequence
	for _, p := range paths {
		seqs, err := readSequenceFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, seqs...)
	}
	return out, nil
}
