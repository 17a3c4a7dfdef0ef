package annotate

import (
	"github.com/tidwall/btree"
)

// rowKey is a BRWT row rendered as its sorted column-id list, used as a
// btree key for unique-row deduplication.
type rowKey struct {
	cols []int
	code uint32
}

func rowLess(a, b rowKey) bool {
	for i := 0; i < len(a.cols) && i < len(b.cols); i++ {
		if a.cols[i] != b.cols[i] {
			return a.cols[i] < b.cols[i]
		}
	}
	return len(a.cols) < len(b.cols)
}

// UniqueRowAnnotator implements row-code compression: every distinct row
// (as a set of columns) is assigned one code, and the
// annotator stores a per-row code array alongside the deduplicated list of
// unique rows, instead of one BRWT leaf per row. This pays off when many
// graph edges share identical label sets, which the batched query path
// produces by construction: many query k-mers map to the same small set
// of reference labels.
//
// Backed by a btree-based ordered set keyed by column-list rather than
// a single scalar.
type UniqueRowAnnotator struct {
	unique   *btree.BTreeG[rowKey]
	rows     [][]int // code -> columns, in assignment order
	rowCodes []uint32
	numCols  int
}

// NewUniqueRowAnnotator creates an annotator with no rows yet.
func NewUniqueRowAnnotator(numCols int) *UniqueRowAnnotator {
	return &UniqueRowAnnotator{
		unique:  btree.NewBTreeG(rowLess),
		numCols: numCols,
	}
}

// AddRow appends a new row (as a sorted column-id slice) and returns its
// assigned code. If cols was already seen, the existing code is reused and
// no new unique row is stored. Returns ErrTooManyUniqueRows once the
// number of distinct rows would exceed 2^32; the caller is expected to
// retry with a smaller batch.
func (u *UniqueRowAnnotator) AddRow(cols []int) (uint32, error) {
	key := rowKey{cols: cols}
	if existing, ok := u.unique.Get(key); ok {
		u.rowCodes = append(u.rowCodes, existing.code)
		return existing.code, nil
	}
	if uint64(len(u.rows)) >= uint64(1)<<32 {
		return 0, ErrTooManyUniqueRows
	}
	code := uint32(len(u.rows))
	key.code = code
	u.unique.Set(key)
	u.rows = append(u.rows, cols)
	u.rowCodes = append(u.rowCodes, code)
	return code, nil
}

// NumRows returns the number of rows appended so far (including
// duplicates of already-seen column sets).
func (u *UniqueRowAnnotator) NumRows() int { return len(u.rowCodes) }

// NumUniqueRows returns the number of distinct column sets stored.
func (u *UniqueRowAnnotator) NumUniqueRows() int { return len(u.rows) }

// Code returns the unique-row code assigned to row index i.
func (u *UniqueRowAnnotator) Code(i int) uint32 { return u.rowCodes[i] }

// Columns returns the column set for unique-row code.
func (u *UniqueRowAnnotator) Columns(code uint32) []int { return u.rows[code] }

// GetRow returns the column set for row index i, resolved through its
// unique-row code.
func (u *UniqueRowAnnotator) GetRow(i int) []int { return u.Columns(u.rowCodes[i]) }

// ToBRWT materialises the full (non-deduplicated) row/column matrix as a
// BRWT, for callers that need BRWT-shaped query semantics (Get/SliceRows/
// SliceColumns) over an annotator originally built from deduplicated
// unique rows.
func (u *UniqueRowAnnotator) ToBRWT() *BRWT {
	has := func(row, col int) bool {
		for _, c := range u.GetRow(row) {
			if c == col {
				return true
			}
		}
		return false
	}
	return BuildFromMatrix(len(u.rowCodes), u.numCols, has)
}
