// Package ingest documents the contract of the out-of-scope
// FASTA/FASTQ/VCF parsing collaborator: a lazy stream of DNA-alphabet
// strings with optional "reverse-complement also" requests. The core
// depends only on the Source interface; actual file-format parsing lives
// outside this module.
package ingest

import "io"

// Sequence is one DNA sequence pulled from a Source.
type Sequence struct {
	Data string
	// Label identifies the origin of this sequence for annotation
	// purposes, e.g. a source file name. A VCF-backed Source is expected
	// to have already prefixed variant-derived labels with "VCF:" before
	// they reach this struct; Source implementations for other formats
	// use whatever convention their caller documents.
	// pkg/annotate.LabelEncoder itself does no parsing of this string.
	Label string
}

// Source streams Sequence values one at a time. Next returns ok=false with
// a nil error once the stream is exhausted; a non-nil error is a terminal
// I/O or parse failure that aborts the pass.
type Source interface {
	Next() (Sequence, bool, error)
	Close() error
}

// Drain reads every remaining Sequence from src into memory and closes it.
// Used by callers (e.g. pkg/construct's single-process build path) that
// need multiple passes over the same sequence set and so cannot rely on a
// single forward-only stream.
func Drain(src Source) ([]Sequence, error) {
	defer src.Close()
	var out []Sequence
	for {
		seq, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, seq)
	}
}

// SliceSource is a trivial in-memory Source, the one concrete
// implementation this module ships: useful for tests and for CLI
// invocations where the caller has already materialised every sequence
// (e.g. from a small FASTA already read by the out-of-scope parser).
type SliceSource struct {
	seqs []Sequence
	pos  int
}

// NewSliceSource wraps a slice of sequences as a Source.
func NewSliceSource(seqs []Sequence) *SliceSource {
	return &SliceSource{seqs: seqs}
}

// NewStringSliceSource wraps raw DNA strings (no per-sequence label) as a
// Source, the common case in tests.
func NewStringSliceSource(raw []string) *SliceSource {
	seqs := make([]Sequence, len(raw))
	for i, s := range raw {
		seqs[i] = Sequence{Data: s}
	}
	return &SliceSource{seqs: seqs}
}

func (s *SliceSource) Next() (Sequence, bool, error) {
	if s.pos >= len(s.seqs) {
		return Sequence{}, false, nil
	}
	seq := s.seqs[s.pos]
	s.pos++
	return seq, true, nil
}

func (s *SliceSource) Close() error { return nil }

var _ io.Closer = (*SliceSource)(nil)
