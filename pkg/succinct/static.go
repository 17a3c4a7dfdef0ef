package succinct

import "math/bits"

// blockBits is the granularity of the rank cache: one cumulative count is
// stored per block of blockBits bits (16 words), giving O(1) rank lookups
// up to a linear scan inside one block.
const blockBits = 1024
const wordsPerBlock = blockBits / 64

// StaticBitVector is an immutable, packed bit vector with O(1) rank and
// O(log n) select, built once from a known bit sequence. It is the
// representation used for `last` (and the component bit vectors of the
// wavelet tree) once a BOSS graph switches to the STAT state.
type StaticBitVector struct {
	words      []uint64
	size       uint64
	numOnes    uint64
	blockRank []uint64 // cumulative ones strictly before block i
}

// NewStaticBitVector builds a StaticBitVector of the given size, with bits
// supplied by get(i).
func NewStaticBitVector(size uint64, get func(i uint64) bool) *StaticBitVector {
	numWords := (size + 63) / 64
	words := make([]uint64, numWords)
	for i := uint64(0); i < size; i++ {
		if get(i) {
			words[i/64] |= 1 << (i % 64)
		}
	}
	return buildStaticFromWords(words, size)
}

// NewStaticBitVectorFromWords wraps pre-packed words (LSB-first within each
// uint64) as a StaticBitVector, building the rank/select indices.
func NewStaticBitVectorFromWords(words []uint64, size uint64) *StaticBitVector {
	cp := make([]uint64, len(words))
	copy(cp, words)
	return buildStaticFromWords(cp, size)
}

func buildStaticFromWords(words []uint64, size uint64) *StaticBitVector {
	numBlocks := (len(words) + wordsPerBlock - 1) / wordsPerBlock
	if numBlocks == 0 {
		numBlocks = 1
	}
	blockRank := make([]uint64, numBlocks+1)
	var cum uint64
	for b := 0; b < numBlocks; b++ {
		blockRank[b] = cum
		start := b * wordsPerBlock
		end := start + wordsPerBlock
		if end > len(words) {
			end = len(words)
		}
		for _, w := range words[start:end] {
			cum += uint64(popcountWord(w))
		}
	}
	blockRank[numBlocks] = cum

	return &StaticBitVector{words: words, size: size, numOnes: cum, blockRank: blockRank}
}

func (sv *StaticBitVector) Size() uint64 { return sv.size }

func (sv *StaticBitVector) Get(i uint64) bool {
	checkRange(i, sv.size)
	return sv.words[i/64]&(1<<(i%64)) != 0
}

func (sv *StaticBitVector) NumOnes() uint64 { return sv.numOnes }

// Rank1 returns the number of 1-bits in [0, i].
func (sv *StaticBitVector) Rank1(i uint64) uint64 {
	checkRange(i, sv.size)
	block := i / blockBits
	rank := sv.blockRank[block]

	wordStart := block * wordsPerBlock
	wordEnd := i / 64
	for w := wordStart; w < wordEnd; w++ {
		rank += uint64(popcountWord(sv.words[w]))
	}
	lastWord := sv.words[wordEnd]
	bitsInWord := i%64 + 1
	mask := uint64(1<<bitsInWord - 1)
	if bitsInWord == 64 {
		mask = ^uint64(0)
	}
	rank += uint64(popcountWord(lastWord & mask))
	return rank
}

// ConditionalRank1 returns 0 if Get(i) is false, else Rank1(i).
func (sv *StaticBitVector) ConditionalRank1(i uint64) uint64 {
	if !sv.Get(i) {
		return 0
	}
	return sv.Rank1(i)
}

// Select1 returns the smallest position i with Rank1(i) == k (1-based k).
func (sv *StaticBitVector) Select1(k uint64) uint64 {
	if k == 0 || k > sv.numOnes {
		panic("succinct: Select1 out of range")
	}
	// Binary search over blocks for the last block whose cumulative rank < k.
	lo, hi := 0, len(sv.blockRank)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if sv.blockRank[mid] < k {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	block := lo
	remaining := k - sv.blockRank[block]

	wordStart := block * wordsPerBlock
	wordEnd := wordStart + wordsPerBlock
	if wordEnd > len(sv.words) {
		wordEnd = len(sv.words)
	}
	for w := wordStart; w < wordEnd; w++ {
		c := uint64(popcountWord(sv.words[w]))
		if remaining <= c {
			return uint64(w)*64 + uint64(selectInWord(sv.words[w], remaining))
		}
		remaining -= c
	}
	panic("succinct: Select1 internal inconsistency")
}

// selectInWord returns the 0-based bit position of the j-th (1-based) set
// bit within w.
func selectInWord(w uint64, j uint64) int {
	for {
		tz := bits.TrailingZeros64(w)
		if tz == 64 {
			panic("succinct: selectInWord ran out of bits")
		}
		j--
		if j == 0 {
			return tz
		}
		w &= ^(uint64(1) << tz)
	}
}

// CallOnes visits every set position in ascending order.
func (sv *StaticBitVector) CallOnes(cb func(pos uint64)) {
	for w := 0; w < len(sv.words); w++ {
		word := sv.words[w]
		base := uint64(w) * 64
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			cb(base + uint64(tz))
			word &= word - 1
		}
	}
}

// GetInt reads width (<=64) consecutive bits starting at position i.
func (sv *StaticBitVector) GetInt(i uint64, width uint) uint64 {
	if width > 64 {
		panic("succinct: GetInt width > 64")
	}
	wordIdx := i / 64
	offset := i % 64
	lo := sv.words[wordIdx] >> offset
	if offset+uint64(width) > 64 && wordIdx+1 < uint64(len(sv.words)) {
		hi := sv.words[wordIdx+1] << (64 - offset)
		lo |= hi
	}
	if width == 64 {
		return lo
	}
	return lo & (1<<width - 1)
}
