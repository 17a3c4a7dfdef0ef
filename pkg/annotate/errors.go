package annotate

import "github.com/pkg/errors"

var (
	// ErrTooManyUniqueRows is the BRWT unique-row overflow capacity error:
	// the number of unique rows must stay under 2^32, otherwise the
	// operation fails and the caller retries with a smaller batch.
	ErrTooManyUniqueRows = errors.New("annotate: unique row count exceeds 2^32")
	// ErrDimensionMismatch describes a row/col outside the declared matrix
	// shape. No function in this package returns it at present.
	ErrDimensionMismatch = errors.New("annotate: row or column index out of declared matrix shape")
)
