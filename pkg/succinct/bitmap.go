package succinct

// LazyBitmap is the non-succinct "bit map / bit mask" companion to
// BitVector: instead of storing bits, it materialises Get(i) on demand by
// calling a user-supplied predicate, optionally caching results. Useful
// when the predicate itself may be expensive (e.g. a k-mer count
// threshold) and most positions are never queried.
type LazyBitmap struct {
	fn    func(i uint64) bool
	size  uint64
	cache map[uint64]bool
}

// NewLazyBitmap wraps fn as a bitmap of the given logical size. If cache is
// true, every Get result is memoised.
func NewLazyBitmap(size uint64, fn func(i uint64) bool, cache bool) *LazyBitmap {
	lb := &LazyBitmap{fn: fn, size: size}
	if cache {
		lb.cache = make(map[uint64]bool)
	}
	return lb
}

func (lb *LazyBitmap) Size() uint64 { return lb.size }

func (lb *LazyBitmap) Get(i uint64) bool {
	checkRange(i, lb.size)
	if lb.cache != nil {
		if v, ok := lb.cache[i]; ok {
			return v
		}
	}
	v := lb.fn(i)
	if lb.cache != nil {
		lb.cache[i] = v
	}
	return v
}

// CallOnes visits every position for which Get returns true, in ascending
// order. Unlike BitVector.CallOnes this is O(size), since a lazy bitmap has
// no rank structure to skip zeros.
func (lb *LazyBitmap) CallOnes(cb func(pos uint64)) {
	for i := uint64(0); i < lb.size; i++ {
		if lb.Get(i) {
			cb(i)
		}
	}
}
