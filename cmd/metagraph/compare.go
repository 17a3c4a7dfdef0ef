package main

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/michalkowalski94/metagraph/pkg/boss"
)

// runCompare implements the `compare` command: exact equality
// of two BOSS graphs, exit code 0 if equal, non-zero otherwise. Equality
// is decided by re-serialising both graphs and comparing bytes, which is
// equivalent to structural equality since Serialize is a pure function of
// (k, state, W, last, F).
func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return usageError{"compare: exactly two .dbg files are required"}
	}

	a, err := boss.Load(fs.Arg(0))
	if err != nil {
		return inputError{err}
	}
	b, err := boss.Load(fs.Arg(1))
	if err != nil {
		return inputError{err}
	}

	var bufA, bufB bytes.Buffer
	if err := a.WriteTo(&bufA); err != nil {
		return err
	}
	if err := b.WriteTo(&bufB); err != nil {
		return err
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		return fmt.Errorf("compare: graphs differ")
	}
	return nil
}
