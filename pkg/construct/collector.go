package construct

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
)

// kmerLess orders packed (k+1)-mers by raw integer value, which is the
// order a plain radix/bucket sort over the packed representation would
// produce.
func kmerLess(a, b alphabet.Packed) bool { return a < b }

// collector is the thread-safe per-suffix-bucket k-mer collector. Backed
// by an ordered BTreeG keyed by the packed integer representation: Set on
// an existing key is idempotent, so the tree is always deduplicated, and
// Ascend walks it in packed-integer order — a sort+uniq over the packed
// representation "for free," without hand-rolling radix buckets.
type collector struct {
	mu       sync.Mutex
	tree     *btree.BTreeG[alphabet.Packed]
	memCap   uint64 // bytes; 0 == unlimited
	approxSz uint64
}

// newCollector creates an empty collector, optionally capped at memCapBytes.
// The per-suffix-pass k-mer collector is the single enforcement checkpoint
// for --mem-cap-gb.
func newCollector(memCapBytes uint64) *collector {
	return &collector{tree: btree.NewBTreeG(kmerLess), memCap: memCapBytes}
}

// bytesPerEntry approximates a BTreeG[uint64] node entry's footprint; used
// only to evaluate the memory-cap checkpoint, not for any correctness
// property.
const bytesPerEntry = 24

// Add inserts a packed (k+1)-mer, returning ErrMemoryCapExceeded if the
// collector's approximate footprint would exceed its configured cap.
func (c *collector) Add(p alphabet.Packed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tree.Get(p); exists {
		return nil
	}
	if c.memCap > 0 {
		projected := c.approxSz + bytesPerEntry
		if projected > c.memCap {
			return ErrMemoryCapExceeded
		}
		c.approxSz = projected
	}
	c.tree.Set(p)
	return nil
}


// Sorted returns every distinct packed (k+1)-mer in ascending order.
func (c *collector) Sorted() []alphabet.Packed {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]alphabet.Packed, 0, c.tree.Len())
	c.tree.Ascend(alphabet.Packed(0), func(item alphabet.Packed) bool {
		out = append(out, item)
		return true
	})
	return out
}

// Len returns the number of distinct entries collected so far.
func (c *collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Len()
}
