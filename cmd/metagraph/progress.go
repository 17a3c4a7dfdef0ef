package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// progressWriter prints transient progress lines to stderr only when
// stderr is attached to a terminal, using go-isatty to decide whether to
// emit interactive-only output.
type progressWriter struct {
	enabled bool
}

func newProgressWriter() *progressWriter {
	fd := os.Stderr.Fd()
	return &progressWriter{enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (p *progressWriter) Printf(format string, args ...any) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r"+format, args...)
}

func (p *progressWriter) Done() {
	if !p.enabled {
		return
	}
	fmt.Fprintln(os.Stderr)
}
