package mergegraph

import "github.com/pkg/errors"

var (
	// ErrNoGraphs is returned when Merge is called with zero inputs.
	ErrNoGraphs = errors.New("mergegraph: no graphs to merge")
	// ErrKMismatch mirrors boss.ErrKMismatch: all merge variants require
	// identical k across inputs; mismatch fails with a typed error.
	ErrKMismatch = errors.New("mergegraph: k mismatch across inputs")
)
