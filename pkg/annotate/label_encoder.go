package annotate

import (
	"sync"

	"github.com/tidwall/btree"
)

// LabelEncoder assigns dense integer column indices to opaque label
// strings. Backed by a BTreeG-based ordered set: deterministic
// enumeration order for diagnostics (Labels()) without a separate sort
// step, at the cost of O(log n) lookups instead of a plain map's O(1) —
// an acceptable trade since label vocabularies are orders of magnitude
// smaller than the edge count they annotate.
type LabelEncoder struct {
	mu     sync.RWMutex
	byName *btree.BTreeG[labelEntry]
	byCol  []string
}

type labelEntry struct {
	name string
	col  int
}

func labelLess(a, b labelEntry) bool { return a.name < b.name }

// NewLabelEncoder creates an empty encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{byName: btree.NewBTreeG(labelLess)}
}

// Encode returns label's column index, assigning the next free index if
// label has not been seen before. Per "does not guarantee any
// particular ordering of label names in output," callers must not assume
// columns are assigned in any meaningful order — only that the same label
// always maps to the same column within one encoder's lifetime.
func (e *LabelEncoder) Encode(label string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.byName.Get(labelEntry{name: label}); ok {
		return entry.col
	}
	col := len(e.byCol)
	e.byName.Set(labelEntry{name: label, col: col})
	e.byCol = append(e.byCol, label)
	return col
}

// Lookup returns label's column index without assigning a new one.
func (e *LabelEncoder) Lookup(label string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.byName.Get(labelEntry{name: label})
	return entry.col, ok
}

// Decode returns the label name for column col.
func (e *LabelEncoder) Decode(col int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.byCol[col]
}

// NumLabels returns the number of distinct labels encoded so far.
func (e *LabelEncoder) NumLabels() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.byCol)
}

// Labels returns every label name in lexicographic order, useful for
// diagnostics and deterministic test assertions.
func (e *LabelEncoder) Labels() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, e.byName.Len())
	e.byName.Ascend(labelEntry{}, func(item labelEntry) bool {
		out = append(out, item.name)
		return true
	})
	return out
}
