package boss

import "github.com/pkg/errors"

// Npos is the sentinel "no such edge" index, matching the reserved index 0
// convention used throughout the edge arrays.
const Npos uint64 = 0

// Sentinel errors for the BOSS graph's typed error taxonomy:
// consistency errors are fatal and distinguishable from ordinary input
// errors so callers can decide whether a retry makes sense.
var (
	// ErrWrongState is returned when an operation that requires DYN (e.g.
	// AddSequence, Merge) is invoked on a STAT graph.
	ErrWrongState = errors.New("boss: operation requires DYN state")
	// ErrKMismatch is returned by Merge when the two graphs were built with
	// different k.
	ErrKMismatch = errors.New("boss: k mismatch between graphs")
	// ErrInvalidMagic is returned by Load when the stream does not start
	// with the BOSS magic header.
	ErrInvalidMagic = errors.New("boss: invalid magic header")
	// ErrUnsupportedVersion is returned by Load for a format version whose
	// major number differs from this reader's.
	ErrUnsupportedVersion = errors.New("boss: unsupported format version")
)
