package construct

import "github.com/pkg/errors"

var (
	// ErrMemoryCapExceeded is returned by a suffix-bucket collector that has
	// grown past the configured --mem-cap-gb while accumulating k-mers.
	// The caller may retry with a smaller batch.
	ErrMemoryCapExceeded = errors.New("construct: memory cap exceeded during k-mer collection")
	// ErrFileOpen is wrapped around any input-stream failure: a file-open
	// or parse error aborts the pass and surfaces an I/O error.
	ErrFileOpen = errors.New("construct: failed to read input sequence stream")
)
