package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExitCodeForMapsErrorKinds(t *testing.T) {
	if got := exitCodeFor(usageError{"bad flag"}); got != 2 {
		t.Fatalf("exitCodeFor(usageError) = %d, want 2", got)
	}
	if got := exitCodeFor(inputError{errors.New("boom")}); got != 1 {
		t.Fatalf("exitCodeFor(inputError) = %d, want 1", got)
	}
	if got := exitCodeFor(errors.New("internal")); got != 3 {
		t.Fatalf("exitCodeFor(other) = %d, want 3", got)
	}
}

func TestReadSequenceFileSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seqs.txt")
	content := "# a comment\n\nACGTACGT\n>fasta-style header ignored\nGGGGCCCC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	seqs, err := readSequenceFile(path)
	if err != nil {
		t.Fatalf("readSequenceFile: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2", len(seqs))
	}
	if seqs[0].Data != "ACGTACGT" || seqs[1].Data != "GGGGCCCC" {
		t.Fatalf("unexpected sequence data: %+v", seqs)
	}
	for _, s := range seqs {
		if s.Label != path {
			t.Fatalf("Label = %q, want %q", s.Label, path)
		}
	}
}

func TestReadSequenceFileMissingFileIsInputError(t *testing.T) {
	_, err := readSequenceFile("/nonexistent/path/does/not/exist.txt")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var ie inputError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want inputError", err)
	}
}

func TestReadSequenceFilesConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	os.WriteFile(pathA, []byte("AAAA\n"), 0o644)
	os.WriteFile(pathB, []byte("TTTT\n"), 0o644)

	seqs, err := readSequenceFiles([]string{pathA, pathB})
	if err != nil {
		t.Fatalf("readSequenceFiles: %v", err)
	}
	if len(seqs) != 2 || seqs[0].Data != "AAAA" || seqs[1].Data != "TTTT" {
		t.Fatalf("unexpected concatenation: %+v", seqs)
	}
}

func TestLogrusLevelForDefaultsOnUnknown(t *testing.T) {
	if got := logrusLevelFor("not-a-level"); got.String() != "info" {
		t.Fatalf("logrusLevelFor(bad) = %v, want info", got)
	}
	if got := logrusLevelFor("debug"); got.String() != "debug" {
		t.Fatalf("logrusLevelFor(debug) = %v, want debug", got)
	}
}
