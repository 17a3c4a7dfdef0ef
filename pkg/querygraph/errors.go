package querygraph

import "github.com/pkg/errors"

var (
	// ErrBatchTooLarge is returned when a batch's unique-row count would
	// exceed the BRWT row-code capacity (step 5: "the operation
	// fails with BatchTooLarge and the caller retries with a smaller
	// batch").
	ErrBatchTooLarge = errors.New("querygraph: batch produced too many unique annotation rows")
	// ErrEmptyBatch guards BuildQueryGraph against a batch with no
	// sequences.
	ErrEmptyBatch = errors.New("querygraph: batch has no sequences")
)
